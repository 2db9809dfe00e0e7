// Package server exposes the ledger and coach over HTTP for a browser
// front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/store"
)

// Advisor is the coach surface the server forwards to.
type Advisor interface {
	HasKey() bool
	Ask(ctx context.Context, question string, p model.Profile, b model.MonthlyBudget, st model.MonthStats) coach.Reply
	Suggest(ctx context.Context, category string, p model.Profile) (string, error)
}

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	AllowOrigin  string
	EventsBuffer int
	Now          func() time.Time
}

// Event is emitted whenever the ledger changes through the API.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date,omitempty"`
	SpentDay  float64   `json:"spent_day,omitempty"`
	Streak    int       `json:"streak,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	CoachConfigured bool      `json:"coach_configured"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API over one ledger.
type Service struct {
	cfg    Config
	ledger *store.Ledger
	coach  Advisor
	log    *zap.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service over ledger and coach. A nil logger discards logs.
func New(cfg Config, ledger *store.Ledger, advisor Advisor, log *zap.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		ledger:    ledger,
		coach:     advisor,
		log:       log,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Service) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger, s.cors)

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/coach", s.handleCoach)
	api.POST("/ai-suggestions", s.handleSuggestion)

	r.GET("/profile", s.handleGetProfile)
	r.POST("/profile", s.handleSaveProfile)
	r.GET("/budget", s.handleBudget)
	r.GET("/checkin", s.handleListCheckins)
	r.POST("/checkin", s.handleCheckin)
	r.GET("/today", s.handleToday)

	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)

	return r
}

// Run serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("server listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.nextEventID++
	ev.ID = s.nextEventID
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.cfg.Now()
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Requests:        s.requests,
		CoachConfigured: s.coach != nil && s.coach.HasKey(),
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
