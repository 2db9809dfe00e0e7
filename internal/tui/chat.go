// Package tui provides the interactive Bubble Tea views for spendora.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/tui/components"
	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Asker answers one coach question. *coach.Client satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string, p model.Profile, b model.MonthlyBudget, st model.MonthStats) coach.Reply
}

// ChatContext is the ledger snapshot every question is asked against.
type ChatContext struct {
	Profile model.Profile
	Budget  model.MonthlyBudget
	Stats   model.MonthStats
}

// Greeting opens every conversation.
const Greeting = "Hi! I'm Violet, your budgeting coach. I can help you understand your spending, answer questions about your budget, and give you personalized tips. What would you like to know?"

// QuickQuestions are offered until the first question is asked.
var QuickQuestions = []string{
	"Can I afford to go out this weekend?",
	"How can I reduce my Uber expenses?",
	"I overspent this week, what should I do?",
	"What's my biggest spending category?",
}

// ReplyMsg carries the coach's answer back into the update loop.
type ReplyMsg struct {
	Reply coach.Reply
}

type countdownMsg struct{}

type chatRole int

const (
	roleCoach chatRole = iota
	roleUser
)

type chatMessage struct {
	role chatRole
	text string
}

const (
	headerHeight = 6 // title + metric cards
	footerHeight = 4 // thinking line + input + status bar
)

// Chat is the Bubble Tea model for the coach conversation.
type Chat struct {
	asker   Asker
	snap    ChatContext
	timeout time.Duration
	now     func() time.Time

	messages []chatMessage
	state    coach.State
	retryAt  time.Time

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// NewChat creates a chat over asker. timeout bounds each question; zero
// leaves calls unbounded.
func NewChat(asker Asker, snap ChatContext, timeout time.Duration) Chat {
	ti := textinput.New()
	ti.Placeholder = "Ask Violet anything about your budget..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.BrandSoft)

	return Chat{
		asker:    asker,
		snap:     snap,
		timeout:  timeout,
		now:      time.Now,
		messages: []chatMessage{{role: roleCoach, text: Greeting}},
		state:    coach.StateIdle,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

// State reports the conversation state.
func (c Chat) State() coach.State { return c.state }

// Init implements tea.Model.
func (c Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.input.Width = max(msg.Width-6, 10)
		c.viewport.Width = msg.Width
		c.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		c.refreshViewport()
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return c, tea.Quit
		case "enter":
			return c.send(c.input.Value())
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		case "1", "2", "3", "4":
			if c.offerQuickQuestions() && c.input.Value() == "" {
				idx := int(msg.String()[0] - '1')
				return c.send(QuickQuestions[idx])
			}
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case ReplyMsg:
		c.state = msg.Reply.State
		text := msg.Reply.Text
		if text == "" {
			text = coach.TextUnavailable
		}
		c.messages = append(c.messages, chatMessage{role: roleCoach, text: text})
		c.refreshViewport()
		if c.state == coach.StateRateLimited {
			wait := msg.Reply.RetryAfter
			if wait <= 0 {
				wait = coach.DefaultRetryAfter
			}
			c.retryAt = c.now().Add(wait)
			return c, countdownTick()
		}
		return c, nil

	case countdownMsg:
		if c.state == coach.StateRateLimited && c.now().Before(c.retryAt) {
			return c, countdownTick()
		}
		return c, nil

	case spinner.TickMsg:
		if c.state == coach.StateWaiting {
			var cmd tea.Cmd
			c.spinner, cmd = c.spinner.Update(msg)
			return c, cmd
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send appends the question and starts the coach call. Empty input and
// questions asked while a reply is pending are ignored.
func (c Chat) send(question string) (tea.Model, tea.Cmd) {
	question = strings.TrimSpace(question)
	if question == "" || c.state == coach.StateWaiting {
		return c, nil
	}
	c.messages = append(c.messages, chatMessage{role: roleUser, text: question})
	c.state = coach.StateWaiting
	c.retryAt = time.Time{}
	c.input.Reset()
	c.refreshViewport()
	return c, tea.Batch(c.askCmd(question), c.spinner.Tick)
}

func (c Chat) askCmd(question string) tea.Cmd {
	asker, snap, timeout := c.asker, c.snap, c.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return ReplyMsg{Reply: asker.Ask(ctx, question, snap.Profile, snap.Budget, snap.Stats)}
	}
}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownMsg{} })
}

func (c Chat) offerQuickQuestions() bool {
	return len(c.messages) == 1 && c.state != coach.StateWaiting
}

func (c *Chat) refreshViewport() {
	if c.width == 0 {
		return
	}
	c.viewport.SetContent(c.renderMessages())
	c.viewport.GotoBottom()
}

func (c Chat) renderMessages() string {
	t := theme.Active
	w := c.width - 4
	if w < 20 {
		w = 20
	}

	coachLabel := lipgloss.NewStyle().Foreground(t.Coach).Bold(true)
	userLabel := lipgloss.NewStyle().Foreground(t.Student).Bold(true)
	body := lipgloss.NewStyle().Foreground(t.Text).Width(w).PaddingLeft(2)
	hint := lipgloss.NewStyle().Foreground(t.Muted).PaddingLeft(2)

	var b strings.Builder
	for i, m := range c.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.role == roleUser {
			b.WriteString(userLabel.Render("You"))
		} else {
			b.WriteString(coachLabel.Render("Violet"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(m.text))
	}

	if c.offerQuickQuestions() {
		b.WriteString("\n\n")
		b.WriteString(hint.Render("Quick questions:"))
		for i, q := range QuickQuestions {
			b.WriteString("\n")
			b.WriteString(hint.Render(fmt.Sprintf("[%d] %s", i+1, q)))
		}
	}
	return b.String()
}

// View implements tea.Model.
func (c Chat) View() string {
	if c.width == 0 {
		return ""
	}
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Brand).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.Muted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Violet"))
	b.WriteString(mutedStyle.Render(" · budgeting coach"))
	b.WriteString("\n")

	st := c.snap.Stats
	b.WriteString(components.MetricRow([]components.Metric{
		components.Amount("Monthly Budget", c.snap.Budget.Total, ""),
		components.Spend("Spent This Month", st.TotalSpent, c.snap.Budget.Total),
		components.Count("Days Left", st.DaysRemaining, "day", ""),
	}, c.width))
	b.WriteString("\n")

	b.WriteString(c.viewport.View())
	b.WriteString("\n")

	if c.state == coach.StateWaiting {
		b.WriteString(c.spinner.View())
		b.WriteString(mutedStyle.Render(" Violet is thinking..."))
	}
	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")

	b.WriteString(components.RenderStatusBar(c.width, "[enter]send  [↑↓]scroll  [esc]quit", c.statusText()))
	return b.String()
}

func (c Chat) statusText() string {
	switch c.state {
	case coach.StateRateLimited:
		if left := c.retryAt.Sub(c.now()); left > 0 {
			return "rate limited, retry in " + components.FormatCountdown(left.Round(time.Second))
		}
		return "ready to retry"
	case coach.StateAuthError:
		return "check the coach API key"
	case coach.StateFailed:
		return "coach unavailable"
	case coach.StateWaiting:
		return "waiting"
	}
	return ""
}
