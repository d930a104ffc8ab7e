package console

import (
	"context"
	"fmt"
	"strings"

	"tgwire/pkg/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const wheelStep = 3

type entryKind int

const (
	entryIncoming entryKind = iota
	entryOutgoing
	entryError
)

type entry struct {
	kind  entryKind
	title string
	body  string
}

type updateMsg struct {
	update types.Update
	ok     bool
}

type sendResultMsg struct {
	message types.Message
	err     error
}

type model struct {
	ctx     context.Context
	send    SendFunc
	updates <-chan types.Update
	info    Info

	theme     theme
	spinner   spinner.Model
	input     textinput.Model
	viewport  viewport.Model
	entries   []entry
	width     int
	height    int
	isReady   bool
	isSending bool
	listening bool
	lastErr   string
	followLog bool
	received  int
	sent      int
}

func newModel(ctx context.Context, send SendFunc, updates <-chan types.Update, info Info) *model {
	spin := spinner.New()
	spin.Spinner = spinner.Points
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Message text..."
	in.Focus()
	in.CharLimit = 0

	vp := viewport.New(80, 12)

	return &model{
		ctx:       ctx,
		send:      send,
		updates:   updates,
		info:      info,
		theme:     defaultTheme(),
		spinner:   spin,
		input:     in,
		viewport:  vp,
		width:     100,
		height:    28,
		listening: updates != nil,
		followLog: true,
	}
}

func (m *model) Init() tea.Cmd {
	if m.listening {
		return tea.Batch(textinput.Blink, waitForUpdate(m.updates))
	}

	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.resizeComponents()
		m.refreshViewport(false)
		m.isReady = true
		return m, nil
	case tea.MouseMsg:
		m.handleViewportMouse(typed)
		return m, nil
	case updateMsg:
		if !typed.ok {
			m.listening = false
			return m, nil
		}
		m.received++
		title, body := describeUpdate(typed.update)
		m.entries = append(m.entries, entry{kind: entryIncoming, title: title, body: body})
		m.refreshViewport(false)
		return m, waitForUpdate(m.updates)
	case sendResultMsg:
		m.isSending = false
		if typed.err != nil {
			m.lastErr = typed.err.Error()
			m.entries = append(m.entries, entry{kind: entryError, title: "send failed", body: typed.err.Error()})
		} else {
			m.lastErr = ""
			m.sent++
			m.entries = append(m.entries, entry{
				kind:  entryOutgoing,
				title: "sent #" + typed.message.MessageID.String(),
				body:  typed.message.Text,
			})
		}
		m.refreshViewport(false)
		return m, nil
	case spinner.TickMsg:
		if !m.isSending {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		if handled := m.handleViewportKey(typed); handled {
			return m, nil
		}

		if typed.String() == "enter" {
			if m.isSending {
				return m, nil
			}

			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if isExitCommand(text) {
				return m, tea.Quit
			}

			m.input.SetValue("")
			m.isSending = true
			m.followLog = true
			return m, tea.Batch(m.spinner.Tick, sendTextCmd(m.ctx, m.send, text))
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if !m.isReady {
		m.resizeComponents()
		m.refreshViewport(false)
	}

	header := m.theme.header.Width(m.width - 2).Render("📡 tgwire console")
	meta := m.theme.headerMeta.Render(fmt.Sprintf(
		"bot:%s · chat:%s · received:%d · sent:%d",
		displayOrNA(m.info.Bot),
		displayOrNA(m.info.Chat),
		m.received,
		m.sent,
	))
	line := m.theme.divider.Width(m.width - 2).Render(strings.Repeat("═", max(8, m.width-2)))

	status := m.theme.status.Render("💡 Enter send  ·  PgUp/PgDn scroll  ·  End jump latest  ·  🛑 Ctrl+C/Esc quit")
	if !m.listening {
		status = m.theme.hint.Render("polling stopped · Enter send  ·  🛑 Ctrl+C/Esc quit")
	}
	if m.isSending {
		status = m.theme.statusBusy.Render(fmt.Sprintf("%s ⚡ sending...", m.spinner.View()))
	}
	if m.lastErr != "" && !m.isSending {
		status = m.theme.statusErr.Render("🚨 last send failed - try again")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		meta,
		line,
		m.theme.viewport.Width(m.width-2).Render(m.viewport.View()),
		status,
		m.theme.inputLabel.Render("✍ Send")+" "+m.theme.hint.Render("(type /exit, quit, or :q)"),
		m.theme.input.Width(m.width-2).Render(m.input.View()),
	)
}

func (m *model) resizeComponents() {
	w := max(50, m.width-6)
	h := max(8, m.height-10)

	m.viewport.Width = w
	m.viewport.Height = h
	m.input.Width = w - 2
}

func (m *model) refreshViewport(forceBottom bool) {
	previousOffset := m.viewport.YOffset
	sections := make([]string, 0, len(m.entries))
	for _, item := range m.entries {
		sections = append(sections, m.renderEntry(item))
	}

	m.viewport.SetContent(strings.Join(sections, "\n\n"))
	if m.followLog || forceBottom {
		m.viewport.GotoBottom()
		m.followLog = true
		return
	}

	maxOffset := max(0, m.viewport.TotalLineCount()-m.viewport.Height)
	m.viewport.SetYOffset(min(previousOffset, maxOffset))
}

func (m *model) renderEntry(item entry) string {
	body := strings.TrimSpace(item.body)

	switch item.kind {
	case entryOutgoing:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.outgoingTitle.Render("▶ "+item.title),
			m.theme.outgoingBox.Width(m.viewport.Width).Render(body),
		)
	case entryError:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.errorTitle.Render("✖ "+item.title),
			m.theme.errorBox.Width(m.viewport.Width).Render(body),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.incomingTitle.Render("◀ "+item.title),
			m.theme.incomingBox.Width(m.viewport.Width).Render(body),
		)
	}
}

func (m *model) handleViewportKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "pgup", "ctrl+b", "alt+up", "ctrl+up":
		m.viewport.PageUp()
		m.followLog = false
		return true
	case "pgdown", "ctrl+f", "alt+down", "ctrl+down":
		m.viewport.PageDown()
		if m.viewport.AtBottom() {
			m.followLog = true
		}
		return true
	case "home":
		m.viewport.GotoTop()
		m.followLog = false
		return true
	case "end":
		m.viewport.GotoBottom()
		m.followLog = true
		return true
	default:
		return false
	}
}

func (m *model) handleViewportMouse(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(max(0, m.viewport.YOffset-wheelStep))
		m.followLog = false
		return true
	case tea.MouseButtonWheelDown:
		maxOffset := max(0, m.viewport.TotalLineCount()-m.viewport.Height)
		m.viewport.SetYOffset(min(maxOffset, m.viewport.YOffset+wheelStep))
		if m.viewport.AtBottom() {
			m.followLog = true
		}
		return true
	default:
		return false
	}
}

func waitForUpdate(updates <-chan types.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		return updateMsg{update: update, ok: ok}
	}
}

func sendTextCmd(ctx context.Context, send SendFunc, text string) tea.Cmd {
	return func() tea.Msg {
		message, err := send(ctx, text)
		return sendResultMsg{message: message, err: err}
	}
}

// describeUpdate picks a title and a one-paragraph body for an update.
func describeUpdate(update types.Update) (string, string) {
	title := string(update.Kind())
	if title == "" {
		title = "empty update"
	}
	if sender := update.Sender(); sender != nil {
		name := sender.FullName()
		if sender.Username != "" {
			name += " @" + sender.Username
		}
		title += " · " + name
	}

	switch {
	case update.AnyMessage() != nil:
		msg := update.AnyMessage()
		if msg.Text != "" {
			return title, msg.Text
		}
		if msg.Caption != "" {
			return title, msg.Caption
		}
		return title, "(message #" + msg.MessageID.String() + " without text)"
	case update.CallbackQuery != nil:
		return title, "data: " + update.CallbackQuery.Data
	case update.InlineQuery != nil:
		return title, "query: " + update.InlineQuery.Query
	case update.ChosenInlineResult != nil:
		return title, "result: " + update.ChosenInlineResult.ResultID
	case update.Poll != nil:
		return title, update.Poll.Question
	case update.MyChatMember != nil:
		return title, "status: " + update.MyChatMember.NewChatMember.WireVariant()
	case update.ChatMember != nil:
		return title, "status: " + update.ChatMember.NewChatMember.WireVariant()
	default:
		return title, "update " + update.UpdateID.String()
	}
}

func displayOrNA(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "n/a"
	}

	return trimmed
}

func isExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "/exit", "quit", ":q":
		return true
	default:
		return false
	}
}
