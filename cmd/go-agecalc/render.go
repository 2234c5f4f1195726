package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#9E9E9E")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(16)
	valueStyle = lipgloss.NewStyle().Bold(true)
	quoteStyle = lipgloss.NewStyle().Italic(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	printer = message.NewPrinter(language.English)
)

// plural renders "1 day" / "2 days".
func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// renderReport formats a calculation for the terminal.
func renderReport(r calcReport) string {
	next := "today!"
	if r.NextBirthdayDays > 0 {
		next = "in " + plural(r.NextBirthdayDays, "day")
	}

	lines := []string{
		titleStyle.Render("Born " + r.BirthDate),
		"",
		row("Age", strings.Join([]string{
			plural(r.Years, "year"), plural(r.Months, "month"), plural(r.Days, "day"),
		}, ", ")),
		row("Total days", printer.Sprintf("%d", r.TotalDays)),
		row("Next birthday", next),
		row("Zodiac", string(r.Zodiac)),
	}

	if r.Insights != nil {
		year, _, _ := strings.Cut(r.BirthDate, "-")
		lines = append(lines,
			"",
			titleStyle.Render("In "+year),
			r.Insights.HistoricalFact,
			"",
			quoteStyle.Render(r.Insights.InspirationalQuote),
		)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
