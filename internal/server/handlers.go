package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/rewards"
)

type coachRequest struct {
	UserMessage any               `json:"userMessage"`
	Profile     json.RawMessage   `json:"profile"`
	Budgets     json.RawMessage   `json:"budgets"`
	MonthStats  *model.MonthStats `json:"monthStats"`
}

type suggestionRequest struct {
	BudgetData json.RawMessage `json:"budgetData"`
	Category   string          `json:"category"`
}

type todayResponse struct {
	Date        string              `json:"date"`
	Entry       model.DailyLogEntry `json:"entry"`
	DailyTarget float64             `json:"dailyTarget"`
	Spent       float64             `json:"spent"`
	Remaining   float64             `json:"remaining"`
	Streak      int                 `json:"streak"`
	Points      int                 `json:"points"`
	Suggestions []string            `json:"suggestions"`
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Service) handleCoach(c *gin.Context) {
	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Warn("coach: invalid body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "reply": coach.TextBadRequest})
		return
	}

	question, ok := req.UserMessage.(string)
	if !ok || question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user message", "reply": coach.TextNoMessage})
		return
	}

	if s.coach == nil || !s.coach.HasKey() {
		s.log.Error("coach: API key not set (check OPENROUTER_API_KEY or OPENAI_API_KEY)")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API key not configured", "reply": coach.TextNoKey})
		return
	}

	ctx := c.Request.Context()
	profile, err := s.profileOrStored(c, req.Profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "reply": coach.TextBadRequest})
		return
	}
	budgetSource, err := s.profileOrStored(c, req.Budgets)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "reply": coach.TextBadRequest})
		return
	}

	var stats model.MonthStats
	if req.MonthStats != nil {
		stats = *req.MonthStats
	} else {
		logs, err := s.ledger.Logs.All(ctx)
		if err != nil {
			s.internalError(c, err)
			return
		}
		stats = pipeline.MonthStats(logs, s.cfg.Now())
	}

	reply := s.coach.Ask(ctx, question, profile, budget.Derive(budgetSource), stats)
	switch reply.State {
	case coach.StateSuccess:
		c.JSON(http.StatusOK, gin.H{"reply": reply.Text})
	case coach.StateRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "Rate limit exceeded",
			"reply":      reply.Text,
			"retryAfter": int(reply.RetryAfter / time.Second),
		})
	case coach.StateAuthError:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed", "reply": reply.Text})
	default:
		s.log.Warn("coach: upstream failure", zap.Error(reply.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get response from Violet Coach", "reply": reply.Text})
	}
}

func (s *Service) handleSuggestion(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestion"})
		return
	}

	profile, err := s.profileOrStored(c, req.BudgetData)
	if err != nil || s.coach == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestion"})
		return
	}

	text, err := s.coach.Suggest(c.Request.Context(), req.Category, profile)
	if err != nil {
		s.log.Warn("ai suggestion failed", zap.String("category", req.Category), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": text})
}

func (s *Service) handleGetProfile(c *gin.Context) {
	p, err := s.ledger.Profiles.Load(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Service) handleSaveProfile(c *gin.Context) {
	var p model.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := s.ledger.Profiles.Save(ctx, p); err != nil {
		s.internalError(c, err)
		return
	}
	saved, err := s.ledger.Profiles.Load(ctx)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.publishEvent(Event{Type: "profile"})
	c.JSON(http.StatusOK, saved)
}

func (s *Service) handleBudget(c *gin.Context) {
	p, err := s.ledger.Profiles.Load(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	b := budget.Derive(p)
	c.JSON(http.StatusOK, gin.H{
		"budget":               b,
		"dailyTargetFromTotal": budget.DailyTargetFromTotal(b),
		"dailyTarget":          budget.DailyTarget,
	})
}

func (s *Service) handleListCheckins(c *gin.Context) {
	logs, err := s.ledger.Logs.All(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	logs = pipeline.SortByDate(pipeline.FilterByRange(logs, c.Query("from"), c.Query("to")))
	c.JSON(http.StatusOK, logs)
}

func (s *Service) handleCheckin(c *gin.Context) {
	var e model.DailyLogEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if e.Date == "" {
		e.Date = model.DateKey(s.cfg.Now())
	}

	ctx := c.Request.Context()
	if err := s.ledger.Logs.Upsert(ctx, e); err != nil {
		if errors.Is(err, model.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, perr := model.ParseDate(e.Date); perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		s.internalError(c, err)
		return
	}

	logs, err := s.ledger.Logs.All(ctx)
	if err != nil {
		s.internalError(c, err)
		return
	}
	s.publishEvent(Event{
		Type:     "checkin",
		Date:     e.Date,
		SpentDay: pipeline.SumDay(logs, e.Date),
		Streak:   pipeline.ComputeStreak(logs, s.cfg.Now()),
	})
	c.JSON(http.StatusOK, e)
}

func (s *Service) handleToday(c *gin.Context) {
	ctx := c.Request.Context()
	now := s.cfg.Now()
	date := c.DefaultQuery("date", model.DateKey(now))
	day, err := model.ParseDate(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := s.ledger.Profiles.Load(ctx)
	if err != nil {
		s.internalError(c, err)
		return
	}
	logs, err := s.ledger.Logs.All(ctx)
	if err != nil {
		s.internalError(c, err)
		return
	}

	entry := model.DailyLogEntry{Date: date}
	for _, e := range logs {
		if e.Date == date {
			entry = e
		}
	}

	spent := pipeline.SumDay(logs, date)
	suggestions := budget.Suggest(entry, budget.Derive(p), p.GroceriesBudget())
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, todayResponse{
		Date:        date,
		Entry:       entry,
		DailyTarget: budget.DailyTarget,
		Spent:       spent,
		Remaining:   max(budget.DailyTarget-spent, 0),
		Streak:      pipeline.ComputeStreak(logs, day),
		Points:      rewards.ComputePoints(len(logs)),
		Suggestions: suggestions,
	})
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, events)
}

func (s *Service) handleStream(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.SSEvent("status", s.snapshotStatus())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}

// profileOrStored decodes raw as a profile, or loads the stored profile when
// raw is absent or an empty object.
func (s *Service) profileOrStored(c *gin.Context, raw json.RawMessage) (model.Profile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return s.ledger.Profiles.Load(c.Request.Context())
	}
	var p model.Profile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	return budget.Normalize(p), nil
}

func (s *Service) internalError(c *gin.Context, err error) {
	s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
