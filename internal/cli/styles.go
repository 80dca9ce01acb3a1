package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI color styles shared across commands.
var (
	cliPrimary = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D97757")).
			Bold(true)

	cliSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	cliWarn = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	cliMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	cardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 2)
)

// kvPair is a label/value line for card rendering.
type kvPair struct {
	Key   string
	Value string
}

// renderKeyValueLines renders aligned key/value lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.Key) > width {
			width = len(p.Key)
		}
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %s",
			cliMuted.Render(fmt.Sprintf("%-*s", width, p.Key)),
			p.Value)
	}
	return b.String()
}

// renderSuccessCard renders a bordered completion card.
func renderSuccessCard(title string, details ...string) string {
	body := cliSuccess.Render("✓ " + title)
	for _, d := range details {
		if d == "" {
			continue
		}
		body += "\n" + d
	}
	return cardBorder.Render(body)
}

// printBanner renders the convkit banner shown before the interactive forms.
func printBanner(ver string) string {
	return cliPrimary.Render("convkit") + " " + cliMuted.Render(ver) + "\n" +
		cliMuted.Render("AI coding conventions, scaffolded.")
}
