package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmaia/bugreport/internal/api"
	"github.com/tmaia/bugreport/internal/chat"
	"github.com/tmaia/bugreport/internal/config"
	"github.com/tmaia/bugreport/internal/export"
	"github.com/tmaia/bugreport/internal/models"
	"github.com/tmaia/bugreport/internal/render"
)

// Message types for the TUI
type (
	responseMsg struct {
		reply string
	}
	errMsg struct {
		err error
	}
)

// Model represents the TUI state. All conversation state lives in the
// controller; the model only holds presentation state.
type Model struct {
	controller *chat.Controller
	client     api.Client
	cfg        config.Config
	theme      render.Theme

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading bool
	ready   bool
	err     error
	notice  string

	// Dimensions
	width  int
	height int
}

// NewModel creates a new chat TUI model
func NewModel(client api.Client, cfg config.Config) Model {
	theme := render.ThemeByName(cfg.Theme)
	ApplyTheme(theme)

	ta := textarea.New()
	ta.Placeholder = "Describe the bug here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		controller: chat.NewController(),
		client:     client,
		cfg:        cfg,
		theme:      theme,
		textarea:   ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "ctrl+t":
			m.toggleTheme()

		case "ctrl+y":
			m.copyLastReply()

		case "enter":
			if m.loading {
				break
			}
			return m.submit(strings.TrimSpace(m.textarea.Value()))
		}

	case responseMsg:
		m.loading = false
		entry := m.controller.CompleteSend(msg.reply)
		if m.cfg.CopyToClipboard {
			// Clipboard may be unavailable in headless terminals
			_ = clipboard.WriteAll(entry.Text())
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.controller.FailSend()
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles a committed input line: quit words, slash commands, or
// a message to send.
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	switch input {
	case "":
		if m.controller.PendingImage() == nil {
			return m, nil
		}
	case "exit", "quit", "/exit", "/quit":
		return m, tea.Quit
	}

	if strings.HasPrefix(input, "/") {
		m.textarea.Reset()
		m.handleCommand(input)
		return m, nil
	}

	history, ok := m.controller.BeginSend(input)
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	m.loading = true
	m.err = nil
	m.notice = ""

	return m, tea.Batch(
		m.sendMessage(history),
		m.spinner.Tick,
	)
}

// handleCommand dispatches slash commands
func (m *Model) handleCommand(input string) {
	m.err = nil
	m.notice = ""

	fields := strings.Fields(input)
	switch fields[0] {
	case "/attach":
		if len(fields) < 2 {
			m.err = fmt.Errorf("usage: /attach <path>")
			return
		}
		path := strings.Join(fields[1:], " ")
		if err := m.controller.AttachImageFile(path); err != nil {
			m.err = err
			return
		}
		img := m.controller.PendingImage()
		m.notice = fmt.Sprintf("attached %s", img.FileName)

	case "/remove":
		m.controller.RemoveImage()
		m.notice = "attachment removed"

	case "/reset":
		m.controller.Reset()
		m.updateViewport()
		m.notice = "conversation cleared"

	case "/export":
		format := export.FormatMarkdown
		if len(fields) > 1 {
			switch fields[1] {
			case "md", "markdown":
				format = export.FormatMarkdown
			case "html":
				format = export.FormatHTML
			default:
				m.err = fmt.Errorf("unknown export format %q (want md or html)", fields[1])
				return
			}
		}
		path, err := export.WriteTranscript(".", format, m.controller.History())
		if err != nil {
			m.err = err
			return
		}
		m.notice = fmt.Sprintf("transcript saved to %s", path)

	case "/theme":
		m.toggleTheme()

	default:
		m.err = fmt.Errorf("unknown command %s", fields[0])
	}
}

// toggleTheme switches between light and dark and persists the choice
func (m *Model) toggleTheme() {
	m.theme = m.theme.Opposite()
	m.cfg.Theme = m.theme.Name
	ApplyTheme(m.theme)
	m.updateViewport()

	if err := config.SaveConfig(m.cfg); err != nil {
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("%s theme", m.theme.Name)
}

// copyLastReply copies the most recent assistant reply to the clipboard
func (m *Model) copyLastReply() {
	history := m.controller.History()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleAssistant {
			if err := clipboard.WriteAll(history[i].Text()); err != nil {
				m.err = err
				return
			}
			m.notice = "copied to clipboard"
			return
		}
	}
	m.notice = "nothing to copy"
}

// sendMessage creates a command that posts the conversation to the proxy
func (m Model) sendMessage(history []models.ConversationEntry) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.client.Send(history)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{reply: reply}
	}
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, entry := range m.controller.History() {
		if i > 0 {
			content.WriteString("\n")
		}

		if entry.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			body := entry.Text()
			if entry.HasImage() {
				marker := attachmentStyle.Render("(screenshot attached)")
				if body == "" {
					body = marker
				} else {
					body += "\n" + marker
				}
			}
			bubble := userBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Assistant")
			rendered := render.FormatTerminal(entry.Text(), boldSpanStyle)
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Center,
			titleStyle.Render("✦ Bug Report Chat"),
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.cfg.Endpoint),
		),
	)
	sections = append(sections, header)

	var messagesContent string
	if m.controller.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Generating bug report...")
	} else {
		label := inputLabelStyle.Render("You")
		if img := m.controller.PendingImage(); img != nil {
			label = lipgloss.JoinHorizontal(
				lipgloss.Center,
				label,
				attachmentStyle.Render("  📎 "+img.FileName),
			)
		}
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			label,
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render("  "+m.notice))
	}
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Form Builder Bug Report")
	subtitle := welcomeStyle.Width(width).Render(
		"Describe the bug you found and attach a screenshot with /attach <path>")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/attach", "Screenshot"},
		{"Ctrl+T", "Theme"},
		{"Ctrl+Y", "Copy"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// Run starts the chat TUI
func Run(client api.Client, cfg config.Config) error {
	p := tea.NewProgram(
		NewModel(client, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
