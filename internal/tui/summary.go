package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SummaryModel displays the final review summary after review is complete
type SummaryModel struct {
	session  *ReviewSession
	styles   *Styles
	width    int
	height   int
	quitting bool
}

// NewSummaryModel creates a new summary screen
func NewSummaryModel(session *ReviewSession) SummaryModel {
	return SummaryModel{
		session: session,
		styles:  DefaultStyles(),
	}
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Review Summary"))
	b.WriteString("\n\n")

	approved, rejected, pending := m.session.Counts()
	b.WriteString(m.renderStatsTable(len(m.session.Items), approved, rejected, pending))
	b.WriteString("\n\n")

	if rejected > 0 {
		b.WriteString(m.styles.Subtitle.Render("Rejected components (not written):"))
		b.WriteString("\n\n")
		for _, item := range m.session.Items {
			if item.Status == ReviewRejected {
				b.WriteString(m.renderItemDetail(item))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("Press enter to write approved and pending components"))
	return b.String()
}

// renderStatsTable creates a formatted stats table
func (m SummaryModel) renderStatsTable(total, approved, rejected, pending int) string {
	var b strings.Builder

	b.WriteString(m.styles.Subtitle.Render("Statistics"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Total components:  %d\n", total)

	approvedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Bold(true)
	fmt.Fprintf(&b, "  Approved:          %s\n", approvedStyle.Render(fmt.Sprintf("%d", approved)))

	rejectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)).Bold(true)
	fmt.Fprintf(&b, "  Rejected:          %s\n", rejectedStyle.Render(fmt.Sprintf("%d", rejected)))

	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray))
	fmt.Fprintf(&b, "  Pending:           %s\n", pendingStyle.Render(fmt.Sprintf("%d", pending)))

	return b.String()
}

// renderItemDetail renders a single item with status and details
func (m SummaryModel) renderItemDetail(item *ReviewItem) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(m.styles.StatusFailed.Render("REJECTED"))
	fmt.Fprintf(&b, " %s/%s  (%s)\n", item.Framework, item.FilePath, item.SourcePath)
	if item.Note != "" {
		fmt.Fprintf(&b, "    note: %s\n", item.Note)
	}
	return b.String()
}
