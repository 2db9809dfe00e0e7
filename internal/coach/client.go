// Package coach talks to an OpenAI-compatible chat completions endpoint to
// produce budgeting advice.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendora/internal/model"
)

const (
	maxBodySize = 1 << 20 // 1 MB
	temperature = 0.7
	maxTokens   = 400
)

// Options configures a Client. Empty fields take package defaults.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Referer    string
	Title      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client sends prompts to the completion endpoint. It holds no per-request
// state and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	referer string
	title   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a client. A client without an API key is valid; every
// call on it fails with ErrAuth.
func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		referer: opts.Referer,
		title:   opts.Title,
		http:    opts.HTTPClient,
		log:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = "https://openrouter.ai/api/v1"
	}
	if c.model == "" {
		c.model = "openai/gpt-4o-mini"
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// Suggest asks for one short advisory for category given the profile.
func (c *Client) Suggest(ctx context.Context, category string, p model.Profile) (string, error) {
	return c.Complete(ctx, SuggestionPrompt(category, p))
}

// Ask forwards a student's question with their profile, derived budget and
// current-month status. Failures never escape as errors; they are mapped to
// a Reply state with displayable text.
func (c *Client) Ask(ctx context.Context, question string, p model.Profile, b model.MonthlyBudget, st model.MonthStats) Reply {
	if strings.TrimSpace(question) == "" {
		return Reply{State: StateFailed, Text: TextNoMessage}
	}
	text, err := c.Complete(ctx, CoachPrompt(question, p, b, st))
	if err != nil {
		return ReplyForError(err)
	}
	return Reply{State: StateSuccess, Text: text}
}

// ReplyForError maps an error from Complete onto a Reply.
func ReplyForError(err error) Reply {
	var rl *RateLimitError
	switch {
	case errors.As(err, &rl):
		return Reply{State: StateRateLimited, Text: TextRateLimited, RetryAfter: rl.RetryAfter, Err: err}
	case errors.Is(err, ErrRateLimited):
		return Reply{State: StateRateLimited, Text: TextRateLimited, RetryAfter: DefaultRetryAfter, Err: err}
	case errors.Is(err, ErrAuth):
		return Reply{State: StateAuthError, Text: TextAuth, Err: err}
	default:
		return Reply{State: StateFailed, Text: TextUnavailable, Err: err}
	}
}

// Complete sends a single user prompt and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrAuth)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("coach: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("coach: creating request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	log := c.log.With(zap.String("request_id", reqID), zap.String("model", c.model))
	log.Debug("coach request", zap.Int("prompt_len", len(prompt)))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("coach request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		log.Warn("coach rejected credentials")
		return "", ErrAuth
	case http.StatusTooManyRequests:
		log.Warn("coach rate limited")
		return "", &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(raw)
		log.Warn("coach unexpected status", zap.String("upstream", msg))
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, msg)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrUnavailable, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	log.Debug("coach response", zap.Int("reply_len", len(text)))
	return text, nil
}

// parseRetryAfter reads a Retry-After header in either delta-seconds or
// HTTP-date form, falling back to DefaultRetryAfter.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultRetryAfter
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return DefaultRetryAfter
}

func upstreamMessage(raw []byte) string {
	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err == nil && cr.Error != nil && cr.Error.Message != "" {
		return cr.Error.Message
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
