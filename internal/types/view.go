// Package types contains shared types used across the application.
package types

// View is the screen the application is showing
type View int

const (
	ViewDashboard View = iota
	ViewEditor
	ViewSession
)

// String returns the string representation of the view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "DASHBOARD"
	case ViewEditor:
		return "EDITOR"
	case ViewSession:
		return "WORKOUT"
	default:
		return "UNKNOWN"
	}
}
