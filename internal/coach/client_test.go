package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spendora/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		APIKey:  "sk-or-test",
		BaseURL: srv.URL + "/",
		Model:   "test-model",
		Referer: "http://localhost:3000",
		Title:   "Spendora - The Explorer",
	})
}

func TestComplete_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-or-test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:3000" {
			t.Errorf("HTTP-Referer = %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "Spendora - The Explorer" {
			t.Errorf("X-Title = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Model != "test-model" || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("request = %+v", req)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Cook twice this week.  "}}]}`))
	})

	got, err := c.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Cook twice this week." {
		t.Errorf("Complete = %q", got)
	}
}

func TestComplete_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrAuth},
		{"forbidden", http.StatusForbidden, "", ErrAuth},
		{"rate limited", http.StatusTooManyRequests, "7", ErrRateLimited},
		{"server error", http.StatusBadGateway, "", ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.header != "" {
					w.Header().Set("Retry-After", tt.header)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			})
			_, err := c.Complete(context.Background(), "hi")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComplete_NoKey(t *testing.T) {
	c := NewClient(Options{})
	if c.HasKey() {
		t.Fatal("HasKey true without key")
	}
	if _, err := c.Complete(context.Background(), "hi"); !errors.Is(err, ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	if _, err := c.Complete(context.Background(), "hi"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestAsk_RateLimitedReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	r := c.Ask(context.Background(), "How am I doing?", model.Profile{}, model.MonthlyBudget{}, model.MonthStats{})
	if r.State != StateRateLimited {
		t.Fatalf("State = %s, want rateLimited", r.State)
	}
	if r.RetryAfter != 12*time.Second {
		t.Errorf("RetryAfter = %v, want 12s", r.RetryAfter)
	}
	if r.Text != TextRateLimited {
		t.Errorf("Text = %q", r.Text)
	}
}

func TestAsk_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Messages[0].Content, `"Can I afford a concert?"`) {
			t.Errorf("prompt missing question: %s", req.Messages[0].Content)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Yes, if you skip two takeout meals."}}]}`))
	})

	r := c.Ask(context.Background(), "Can I afford a concert?", model.Profile{}, model.MonthlyBudget{}, model.MonthStats{})
	if r.State != StateSuccess || r.Err != nil {
		t.Fatalf("reply = %+v", r)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	c := NewClient(Options{APIKey: "k"})
	r := c.Ask(context.Background(), "   ", model.Profile{}, model.MonthlyBudget{}, model.MonthStats{})
	if r.Text != TextNoMessage {
		t.Errorf("Text = %q", r.Text)
	}
}

func TestReplyForError(t *testing.T) {
	if r := ReplyForError(ErrAuth); r.State != StateAuthError || r.Text != TextAuth {
		t.Errorf("auth reply = %+v", r)
	}
	if r := ReplyForError(ErrRateLimited); r.RetryAfter != DefaultRetryAfter {
		t.Errorf("bare rate limit RetryAfter = %v", r.RetryAfter)
	}
	if r := ReplyForError(errors.New("boom")); r.State != StateFailed || r.Text != TextUnavailable {
		t.Errorf("generic reply = %+v", r)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := parseRetryAfter("", now); got != DefaultRetryAfter {
		t.Errorf("empty = %v", got)
	}
	if got := parseRetryAfter("5", now); got != 5*time.Second {
		t.Errorf("seconds = %v", got)
	}
	date := now.Add(45 * time.Second).Format(http.TimeFormat)
	if got := parseRetryAfter(date, now); got != 45*time.Second {
		t.Errorf("http-date = %v", got)
	}
	if got := parseRetryAfter("soon", now); got != DefaultRetryAfter {
		t.Errorf("garbage = %v", got)
	}
}

func TestStateString(t *testing.T) {
	want := []string{"idle", "waiting", "success", "authError", "rateLimited", "failed"}
	for i, w := range want {
		if got := State(i).String(); got != w {
			t.Errorf("State(%d) = %q, want %q", i, got, w)
		}
	}
}
