package theme

// Styling for the viewer. A PaletteSnapshot holds the semantic colours for one mode;
// Apply activates the base Tk theme and configures the named styles from it.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaletteSnapshot defines core semantic colors used across widgets.
type PaletteSnapshot struct {
	AppBg   string
	Surface string
	Primary string
	Danger  string
	Accent  string
	OnColor string // text drawn on Primary/Danger/Accent
}

var (
	Light = PaletteSnapshot{
		AppBg:   "#f4f6f8",
		Surface: "#ffffff",
		Primary: "#0f766e",
		Danger:  "#c2410c",
		Accent:  "#4338ca",
		OnColor: "white",
	}
	Dark = PaletteSnapshot{
		AppBg:   "#111827",
		Surface: "#1f2937",
		Primary: "#14b8a6",
		Danger:  "#f97316",
		Accent:  "#818cf8",
		OnColor: "#f9fafb",
	}
)

// style names used with Style(theme.StylePrimaryButton) etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var current = Light

// Current returns the palette applied last.
func Current() PaletteSnapshot { return current }

// Apply activates the base theme and configures every named style.
func Apply(dark bool) {
	current = Light
	if dark {
		current = Dark
	}
	p := current
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))

	button := func(name, bg string) {
		StyleConfigure(name,
			Background(bg),
			Foreground(p.OnColor),
			Padding("4p 3p"),
			Borderwidth(1),
			Relief("ridge"),
		)
	}
	button(StylePrimaryButton, p.Primary)
	button(StyleDangerButton, p.Danger)

	StyleConfigure(StyleStateLabel,
		Foreground(p.OnColor),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
