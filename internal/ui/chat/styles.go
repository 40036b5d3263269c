package chat

import (
	"fmt"
	"strings"

	"github.com/blastlab/testgen/internal/chat"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("118"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// priorityColor maps High to red, Medium to amber and Low to blue.
func priorityColor(p testcase.Priority) lipgloss.Color {
	switch p {
	case testcase.PriorityHigh:
		return lipgloss.Color("196")
	case testcase.PriorityMedium:
		return lipgloss.Color("214")
	case testcase.PriorityLow:
		return lipgloss.Color("39")
	default:
		return lipgloss.Color("246")
	}
}

func renderCard(tc testcase.TestCase, width int) string {
	color := priorityColor(tc.Priority)
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s  %s", tc.ID, tc.Title))
	badge := lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(tc.Priority))
	b.WriteString(title + "  " + badge + "\n")
	if tc.Preconditions != "" {
		b.WriteString(mutedStyle.Render("Preconditions: ") + tc.Preconditions + "\n")
	}
	for i, s := range tc.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString(mutedStyle.Render("Expected: ") + tc.ExpectedResult)

	style := cardStyle.BorderForeground(color)
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render(b.String())
}

// renderEntries draws the conversation; spin replaces the spinner glyph on
// loading entries.
func renderEntries(entries []chat.Entry, spin string, width int) string {
	var b strings.Builder
	b.WriteString(assistantStyle.Render("TestGen") + "  " + chat.WelcomeMessage + "\n")
	for _, e := range entries {
		b.WriteString("\n")
		switch {
		case e.Role == chat.RoleUser:
			b.WriteString(userStyle.Render("You") + "  " + e.Content + "\n")
		case e.IsLoading:
			b.WriteString(assistantStyle.Render("TestGen") + "  " + spin + " " + mutedStyle.Render(e.Content) + "\n")
		case e.Content == chat.FailureMessage:
			b.WriteString(assistantStyle.Render("TestGen") + "  " + errorStyle.Render(e.Content) + "\n")
		default:
			b.WriteString(assistantStyle.Render("TestGen") + "  " + e.Content + "\n")
			for _, tc := range e.TestCases {
				b.WriteString(renderCard(tc, width) + "\n")
			}
		}
	}
	return b.String()
}
