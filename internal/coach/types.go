package coach

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuth indicates missing or rejected credentials.
	ErrAuth = errors.New("coach: authentication failed")
	// ErrRateLimited indicates the upstream rate limit was hit.
	ErrRateLimited = errors.New("coach: rate limited")
	// ErrUnavailable covers every other upstream failure.
	ErrUnavailable = errors.New("coach: unavailable")
)

// DefaultRetryAfter is suggested when a 429 carries no Retry-After header.
const DefaultRetryAfter = 20 * time.Second

// RateLimitError is returned for 429 responses. It matches ErrRateLimited
// under errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("coach: rate limited (retry after %s)", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// State is the lifecycle of one coach exchange, as shown by a chat view.
type State int

const (
	StateIdle State = iota
	StateWaiting
	StateSuccess
	StateAuthError
	StateRateLimited
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateSuccess:
		return "success"
	case StateAuthError:
		return "authError"
	case StateRateLimited:
		return "rateLimited"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Reply is the outcome of Ask. Text is always displayable: the model's
// answer on success, a user-facing explanation otherwise.
type Reply struct {
	State      State
	Text       string
	RetryAfter time.Duration // set for StateRateLimited
	Err        error
}

// User-facing reply texts for failed exchanges.
const (
	TextRateLimited = "I'm getting too many requests right now. Please wait a moment and try again in about 20 seconds. If this happens often, you may need to add a payment method to your OpenAI account to increase the rate limit."
	TextAuth        = "I'm having trouble connecting to the AI service. Please check the API key configuration."
	TextNoKey       = "I'm having trouble connecting right now. Please check the server configuration."
	TextUnavailable = "I'm having trouble right now. Please try again in a moment!"
	TextBadRequest  = "I'm having trouble understanding your request. Please try again!"
	TextNoMessage   = "I didn't receive your question. Please try asking again!"
)

// chatRequest is the OpenAI-compatible chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}
