package view

import (
	"github.com/soocke/pixel-stream-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsBar shows frame rate, throughput and running totals.
type StatsBar interface {
	SetStats(rate, throughput, totals string)
	SetSource(text string)
}

type statsBar struct {
	sourceLbl *TLabelWidget
	rateLbl   *LabelWidget
	tputLbl   *LabelWidget
	totalsLbl *LabelWidget
}

// NewStatsBar lays out the labels on row, starting at column startCol.
func NewStatsBar(row, startCol int) StatsBar {
	s := &statsBar{
		sourceLbl: TLabel(Txt("<no display>"), Style(theme.StyleStateLabel)),
		rateLbl:   Label(Width(24), Anchor("w")),
		tputLbl:   Label(Width(12), Anchor("w")),
		totalsLbl: Label(Anchor("w")),
	}
	Grid(s.sourceLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	Grid(s.rateLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.tputLbl, Row(row), Column(startCol+2), Sticky("w"), Padx("0.2m"))
	Grid(s.totalsLbl, Row(row+1), Column(startCol), Columnspan(3), Sticky("w"), Padx("0.4m"))
	s.SetStats("0.0 fps", "0 B/s", "frames 0")
	return s
}

func (s *statsBar) SetStats(rate, throughput, totals string) {
	if s == nil || s.rateLbl == nil {
		return
	}
	s.rateLbl.Configure(Txt(rate))
	s.tputLbl.Configure(Txt(throughput))
	s.totalsLbl.Configure(Txt(totals))
}

func (s *statsBar) SetSource(text string) {
	if s == nil || s.sourceLbl == nil {
		return
	}
	s.sourceLbl.Configure(Txt(text))
}
