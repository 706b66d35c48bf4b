// Package tui holds terminal setup shared by the tour's interactive commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI applies a colour profile forced through the environment.
// CLICOLOR_FORCE=1 or COLORTERM=truecolor select true colour so overlay
// opacity blending survives pipes and CI; NO_COLOR disables colour. Without
// these variables lipgloss keeps the profile it detected.
func InitializeTUI() {
	if profile, ok := forcedProfile(os.Getenv); ok {
		lipgloss.SetColorProfile(profile)
	}
}

func forcedProfile(getenv func(string) string) (termenv.Profile, bool) {
	switch {
	case getenv("NO_COLOR") != "":
		return termenv.Ascii, true
	case getenv("CLICOLOR_FORCE") == "1", getenv("COLORTERM") == "truecolor":
		return termenv.TrueColor, true
	default:
		return termenv.Ascii, false
	}
}
