package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Pane int

const (
	PaneLeft Pane = iota
	PaneRight
)

type ReviewModel struct {
	session    *ReviewSession
	styles     *Styles
	cursor     int // current item index
	activePane Pane
	scroll     int // first visible line of the active pane
	width      int
	height     int
	quitting   bool
	inputMode  bool // true when typing a note
	textInput  textinput.Model
	help       help.Model
	keys       keyMap
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Tab        key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Approve    key.Binding
	ApproveAll key.Binding
	Reject     key.Binding
	Note       key.Binding
	Enter      key.Binding
	Quit       key.Binding
	Escape     key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.Up,
		km.Down,
		km.Tab,
		km.Approve,
		km.Reject,
		km.Note,
		km.Quit,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Tab, km.ScrollUp, km.ScrollDown},
		{km.Approve, km.ApproveAll, km.Reject, km.Note},
		{km.Enter, km.Escape, km.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev item"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next item"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		ApproveAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "approve pending"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reject"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "note"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "finish"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func NewReviewModel(session *ReviewSession) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Note for this component..."
	ti.Width = 50

	return ReviewModel{
		session:    session,
		styles:     DefaultStyles(),
		activePane: PaneRight,
		width:      80,
		height:     24,
		textInput:  ti,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Session returns the session being reviewed.
func (m ReviewModel) Session() *ReviewSession { return m.session }

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inputMode {
			switch msg.String() {
			case "enter":
				if m.cursor < len(m.session.Items) {
					m.session.Items[m.cursor].Note = m.textInput.Value()
				}
				m.inputMode = false
				m.textInput.SetValue("")
				m.textInput.Blur()
				return m, nil
			case "esc":
				m.inputMode = false
				m.textInput.SetValue("")
				m.textInput.Blur()
				return m, nil
			default:
				m.textInput, cmd = m.textInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.session.Items)-1 {
				m.cursor++
				m.scroll = 0
			}
			return m, nil

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.scroll = 0
			}
			return m, nil

		case "tab":
			if m.activePane == PaneLeft {
				m.activePane = PaneRight
			} else {
				m.activePane = PaneLeft
			}
			m.scroll = 0
			return m, nil

		case "pgdown":
			m.scroll += m.visibleLines()
			return m, nil

		case "pgup":
			m.scroll = max(0, m.scroll-m.visibleLines())
			return m, nil

		case "a":
			if m.cursor < len(m.session.Items) {
				m.session.Items[m.cursor].Status = ReviewApproved
				if m.cursor < len(m.session.Items)-1 {
					m.cursor++
					m.scroll = 0
				}
			}
			return m, nil

		case "A":
			for _, item := range m.session.Items {
				if item.Status == ReviewPending {
					item.Status = ReviewApproved
				}
			}
			return m, nil

		case "r":
			if m.cursor < len(m.session.Items) {
				m.session.Items[m.cursor].Status = ReviewRejected
			}
			return m, nil

		case "n":
			m.inputMode = true
			if m.cursor < len(m.session.Items) {
				m.textInput.SetValue(m.session.Items[m.cursor].Note)
			}
			m.textInput.Focus()
			return m, textinput.Blink

		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ReviewModel) View() string {
	if m.quitting {
		return ""
	}

	if len(m.session.Items) == 0 {
		return m.styles.StatusFailed.Render("No components to review")
	}

	sections := []string{
		m.renderTopBar(),
		m.renderNavigator(),
		m.renderPanels(),
		m.renderBottom(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReviewModel) renderTopBar() string {
	title := fmt.Sprintf("svgsmith review - %s", strings.Join(m.session.Frameworks, ", "))
	approved, rejected, pending := m.session.Counts()
	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.StatusSuccess.Render(fmt.Sprintf("%d approved", approved)), " ",
		m.styles.StatusFailed.Render(fmt.Sprintf("%d rejected", rejected)), " ",
		m.styles.StatusPending.Render(fmt.Sprintf("%d pending", pending)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Title.Render(title), "  ", counts)
}

func (m ReviewModel) renderNavigator() string {
	if m.cursor >= len(m.session.Items) {
		return ""
	}

	item := m.session.Items[m.cursor]
	position := fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.session.Items))
	name := fmt.Sprintf("%s/%s", item.Framework, item.FilePath)
	size := SizeColor(item.SizeRatio()).Render(fmt.Sprintf("%d → %d bytes", len(item.Original), len(item.Generated)))
	status := m.formatStatus(item.Status)

	parts := []string{position, name, size, status}
	if item.Note != "" {
		parts = append(parts, "note: "+item.Note)
	}
	return m.styles.Subtitle.Render(strings.Join(parts, "  "))
}

func (m ReviewModel) formatStatus(status ReviewStatus) string {
	switch status {
	case ReviewApproved:
		return m.styles.StatusSuccess.Render("[Approved]")
	case ReviewRejected:
		return m.styles.StatusFailed.Render("[Rejected]")
	default:
		return m.styles.StatusPending.Render("[Pending]")
	}
}

func (m ReviewModel) renderPanels() string {
	if m.cursor >= len(m.session.Items) {
		return ""
	}

	item := m.session.Items[m.cursor]

	leftScroll, rightScroll := 0, 0
	if m.activePane == PaneLeft {
		leftScroll = m.scroll
	} else {
		rightScroll = m.scroll
	}

	leftPanel := m.renderCodePanel(
		fmt.Sprintf("Source (%s)", item.SourcePath),
		item.Original,
		leftScroll,
		m.activePane == PaneLeft,
	)

	rightPanel := m.renderCodePanel(
		fmt.Sprintf("Generated (%s)", item.Framework),
		item.Generated,
		rightScroll,
		m.activePane == PaneRight,
	)

	panelWidth := (m.width - 2) / 2
	leftPanel = lipgloss.NewStyle().Width(panelWidth).Render(leftPanel)
	rightPanel = lipgloss.NewStyle().Width(panelWidth).Render(rightPanel)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

func (m ReviewModel) visibleLines() int {
	return max(1, m.height-12)
}

func (m ReviewModel) renderCodePanel(title, code string, scroll int, active bool) string {
	style := m.styles.Border
	titleStyled := m.styles.Tab.Render(title)
	if active {
		style = m.styles.ActiveBorder
		titleStyled = m.styles.ActiveTab.Render(title)
	}

	codeLines := strings.Split(code, "\n")
	if scroll >= len(codeLines) {
		scroll = max(0, len(codeLines)-1)
	}
	maxLines := m.visibleLines()

	var numberedLines []string
	for i := scroll; i < len(codeLines) && i < scroll+maxLines; i++ {
		truncated := truncateLine(codeLines[i], (m.width/2)-14)
		numberedLines = append(numberedLines, fmt.Sprintf("%3d │ %s", i+1, truncated))
	}

	codeStyled := m.styles.CodeBlock.Render(strings.Join(numberedLines, "\n"))
	panel := lipgloss.JoinVertical(lipgloss.Left, titleStyled, codeStyled)
	return style.Render(panel)
}

func truncateLine(line string, maxWidth int) string {
	runes := []rune(line)
	if len(runes) <= maxWidth {
		return line
	}
	if maxWidth < 3 {
		return "..."
	}
	return string(runes[:maxWidth-3]) + "..."
}

func (m ReviewModel) renderBottom() string {
	if m.inputMode {
		return m.styles.Help.Render("Note: " + m.textInput.View())
	}
	return m.styles.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
