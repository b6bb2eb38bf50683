//go:build !darwin

package capture

// HasPermission is always true where screen capture needs no grant.
func HasPermission() bool { return true }

func RequestPermission() bool { return true }
