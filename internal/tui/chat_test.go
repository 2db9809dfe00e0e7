package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeAsker struct {
	questions []string
	reply     coach.Reply
}

func (f *fakeAsker) Ask(_ context.Context, q string, _ model.Profile, _ model.MonthlyBudget, _ model.MonthStats) coach.Reply {
	f.questions = append(f.questions, q)
	return f.reply
}

func newTestChat(t *testing.T, reply coach.Reply) (Chat, *fakeAsker) {
	t.Helper()
	asker := &fakeAsker{reply: reply}
	c := NewChat(asker, ChatContext{
		Budget: model.MonthlyBudget{Total: 2100},
		Stats:  model.MonthStats{TotalSpent: 420, DaysRemaining: 21},
	}, time.Second)
	m, _ := c.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(Chat), asker
}

func update(t *testing.T, c Chat, msg tea.Msg) (Chat, tea.Cmd) {
	t.Helper()
	m, cmd := c.Update(msg)
	out, ok := m.(Chat)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return out, cmd
}

func TestNewChatStartsWithGreeting(t *testing.T) {
	c, _ := newTestChat(t, coach.Reply{})
	if c.State() != coach.StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
	view := c.View()
	for _, want := range []string{"Violet", "budgeting coach", "$2,100", "Quick questions:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	c := NewChat(&fakeAsker{}, ChatContext{}, 0)
	if c.View() != "" {
		t.Error("view should be empty before the first WindowSizeMsg")
	}
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	c, _ := newTestChat(t, coach.Reply{})
	c.input.SetValue("   ")
	c, cmd := update(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank input should not start a request")
	}
	if c.State() != coach.StateIdle || len(c.messages) != 1 {
		t.Errorf("state = %s, messages = %d", c.State(), len(c.messages))
	}
}

func TestSendAndReply(t *testing.T) {
	c, asker := newTestChat(t, coach.Reply{State: coach.StateSuccess, Text: "Cook twice more this week."})
	c.input.SetValue("  how am I doing?  ")

	c, cmd := update(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if c.State() != coach.StateWaiting {
		t.Fatalf("state = %s, want waiting", c.State())
	}
	if c.input.Value() != "" {
		t.Errorf("input not cleared: %q", c.input.Value())
	}
	if got := c.messages[len(c.messages)-1]; got.role != roleUser || got.text != "how am I doing?" {
		t.Errorf("last message = %+v", got)
	}

	// A second question is ignored while waiting.
	c.input.SetValue("again")
	c, cmd = update(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || len(c.messages) != 2 {
		t.Errorf("question accepted while waiting, messages = %d", len(c.messages))
	}

	msg := c.askCmd("how am I doing?")()
	reply, ok := msg.(ReplyMsg)
	if !ok {
		t.Fatalf("askCmd returned %T", msg)
	}
	if len(asker.questions) != 1 || asker.questions[0] != "how am I doing?" {
		t.Errorf("asked %v", asker.questions)
	}

	c, _ = update(t, c, reply)
	if c.State() != coach.StateSuccess {
		t.Errorf("state = %s, want success", c.State())
	}
	if !strings.Contains(c.View(), "Cook twice more this week.") {
		t.Error("reply not rendered")
	}
}

func TestRateLimitedReplyShowsCountdown(t *testing.T) {
	c, _ := newTestChat(t, coach.Reply{})
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c, cmd := update(t, c, ReplyMsg{Reply: coach.Reply{
		State: coach.StateRateLimited,
		Text:  coach.TextRateLimited,
	}})
	if cmd == nil {
		t.Error("expected a countdown tick")
	}
	if c.State() != coach.StateRateLimited {
		t.Fatalf("state = %s", c.State())
	}
	if got := c.statusText(); got != "rate limited, retry in 20s" {
		t.Errorf("status = %q", got)
	}

	c.now = func() time.Time { return base.Add(time.Minute) }
	if _, cmd := update(t, c, countdownMsg{}); cmd != nil {
		t.Error("countdown should stop once the wait has passed")
	}
	if got := c.statusText(); got != "ready to retry" {
		t.Errorf("status = %q", got)
	}
}

func TestQuickQuestionShortcut(t *testing.T) {
	c, _ := newTestChat(t, coach.Reply{})
	c, cmd := update(t, c, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if cmd == nil {
		t.Fatal("expected the quick question to be sent")
	}
	if got := c.messages[len(c.messages)-1].text; got != QuickQuestions[1] {
		t.Errorf("sent %q", got)
	}

	// Once a conversation exists digits are ordinary input.
	c.state = coach.StateSuccess
	c, _ = update(t, c, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if c.input.Value() != "3" {
		t.Errorf("input = %q, want 3", c.input.Value())
	}
}

func TestEmptyReplyFallsBackToUnavailableText(t *testing.T) {
	c, _ := newTestChat(t, coach.Reply{})
	c, _ = update(t, c, ReplyMsg{Reply: coach.Reply{State: coach.StateFailed}})
	if got := c.messages[len(c.messages)-1].text; got != coach.TextUnavailable {
		t.Errorf("text = %q", got)
	}
}
