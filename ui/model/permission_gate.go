package model

// PermissionGate asks the OS for screen capture permission at most once per
// process; later checks only query the current state.
type PermissionGate struct {
	Has     func() bool
	Request func() bool

	asked bool
}

func NewPermissionGate(has, request func() bool) *PermissionGate {
	return &PermissionGate{Has: has, Request: request}
}

// Allowed reports whether capture is permitted, prompting the user on the
// first call that finds it missing.
func (g *PermissionGate) Allowed() bool {
	if g.Has() {
		return true
	}
	if g.asked {
		return false
	}
	g.asked = true
	return g.Request()
}
