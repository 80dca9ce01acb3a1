// Package ui provides terminal UI primitives shared by the convkit CLI:
// headless-mode detection, themed progress reporting, and color palette.
package ui

import "os"

// Colors is the convkit terminal color palette.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme bundles the palette with output preferences.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// DefaultTheme returns the standard convkit theme.
// NO_COLOR in the environment disables colored output.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: Colors{
			Primary:   "#D97757",
			Secondary: "#7C6AEF",
			Success:   "#10B981",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}
