package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/model"
)

// Ledger groups the profile and daily log stores over one KV.
type Ledger struct {
	Profiles *ProfileStore
	Logs     *LogStore

	kv  KV
	log *zap.Logger
}

// NewLedger wires both stores to kv. A nil logger uses the global one.
func NewLedger(kv KV, log *zap.Logger) *Ledger {
	if log == nil {
		log = logger.Get()
	}
	return &Ledger{
		Profiles: &ProfileStore{kv: kv, log: log},
		Logs:     &LogStore{kv: kv, log: log},
		kv:       kv,
		log:      log,
	}
}

// Reset removes the profile, the daily logs and both onboarding flags.
func (l *Ledger) Reset(ctx context.Context) error {
	l.Logs.mu.Lock()
	defer l.Logs.mu.Unlock()
	for _, key := range ledgerKeys {
		if err := l.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	l.log.Info("ledger reset")
	return nil
}

// ProfileStore persists the single user Profile and onboarding state.
type ProfileStore struct {
	kv  KV
	log *zap.Logger
}

// Load returns the stored profile, normalized. A missing or malformed record
// yields the zero Profile; only storage failures are returned as errors.
func (s *ProfileStore) Load(ctx context.Context) (model.Profile, error) {
	raw, ok, err := s.kv.Get(ctx, KeyProfile)
	if err != nil {
		return model.Profile{}, err
	}
	if !ok || raw == "" {
		return model.Profile{}, nil
	}

	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("discarding malformed profile", zap.String("key", KeyProfile), zap.Error(err))
		return model.Profile{}, nil
	}
	return budget.Normalize(p), nil
}

// Exists reports whether a profile record is stored.
func (s *ProfileStore) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.kv.Get(ctx, KeyProfile)
	return ok, err
}

// Save normalizes and stores p, replacing any previous profile.
func (s *ProfileStore) Save(ctx context.Context, p model.Profile) error {
	data, err := json.Marshal(budget.Normalize(p))
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return s.kv.Set(ctx, KeyProfile, string(data))
}

// OnboardingComplete reports the stored flag; anything unparsable is false.
func (s *ProfileStore) OnboardingComplete(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyOnboardingComplete)
	if err != nil || !ok {
		return false, err
	}
	done, perr := strconv.ParseBool(raw)
	if perr != nil {
		s.log.Warn("discarding malformed flag", zap.String("key", KeyOnboardingComplete), zap.String("value", raw))
		return false, nil
	}
	return done, nil
}

// SetOnboardingComplete stores the flag.
func (s *ProfileStore) SetOnboardingComplete(ctx context.Context, done bool) error {
	return s.kv.Set(ctx, KeyOnboardingComplete, strconv.FormatBool(done))
}

// Mode returns the stored onboarding narrative, defaulting to ModeCurrent.
func (s *ProfileStore) Mode(ctx context.Context) (model.UserMode, error) {
	raw, ok, err := s.kv.Get(ctx, KeyUserMode)
	if err != nil || !ok {
		return model.ModeCurrent, err
	}
	switch m := model.UserMode(raw); m {
	case model.ModeCurrent, model.ModeIncoming:
		return m, nil
	}
	s.log.Warn("discarding unknown user mode", zap.String("value", raw))
	return model.ModeCurrent, nil
}

// SetMode stores the onboarding narrative.
func (s *ProfileStore) SetMode(ctx context.Context, m model.UserMode) error {
	if m != model.ModeCurrent && m != model.ModeIncoming {
		return fmt.Errorf("store: unknown user mode %q", m)
	}
	return s.kv.Set(ctx, KeyUserMode, string(m))
}

// LogStore persists daily log entries as one JSON array, keyed by date.
// Writes rewrite the whole array, so mu serializes every read-modify-write.
type LogStore struct {
	kv  KV
	log *zap.Logger
	mu  sync.Mutex
}

// All returns every stored entry in stored order. A missing or malformed
// array yields no entries; individual invalid entries are skipped.
func (s *LogStore) All(ctx context.Context) ([]model.DailyLogEntry, error) {
	raw, ok, err := s.kv.Get(ctx, KeyDailyLogs)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var entries []model.DailyLogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("discarding malformed daily logs", zap.String("key", KeyDailyLogs), zap.Error(err))
		return nil, nil
	}

	valid := entries[:0]
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			s.log.Warn("skipping invalid log entry", zap.String("date", e.Date), zap.Error(err))
			continue
		}
		if i, dup := seen[e.Date]; dup {
			valid[i] = e
			continue
		}
		seen[e.Date] = len(valid)
		valid = append(valid, e)
	}
	return valid, nil
}

// Get returns the entry for date, if any.
func (s *LogStore) Get(ctx context.Context, date string) (model.DailyLogEntry, bool, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return model.DailyLogEntry{}, false, err
	}
	for _, e := range entries {
		if e.Date == date {
			return e, true, nil
		}
	}
	return model.DailyLogEntry{}, false, nil
}

// Upsert validates e and stores it, replacing any entry for the same date.
func (s *LogStore) Upsert(ctx context.Context, e model.DailyLogEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLocked(ctx, e)
}

func (s *LogStore) upsertLocked(ctx context.Context, e model.DailyLogEntry) error {
	entries, err := s.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Date == e.Date {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return s.write(ctx, entries)
}

// Record sets one category amount for date, creating the entry if needed.
// An invalid amount is rejected before anything is written.
func (s *LogStore) Record(ctx context.Context, date string, c model.Category, amount float64) (model.DailyLogEntry, error) {
	return s.update(ctx, date, func(e *model.DailyLogEntry) error {
		return e.SetAmount(c, amount)
	})
}

// Add increases one category amount for date by amount.
func (s *LogStore) Add(ctx context.Context, date string, c model.Category, amount float64) (model.DailyLogEntry, error) {
	if err := model.ValidateAmount(amount); err != nil {
		return model.DailyLogEntry{}, err
	}
	return s.update(ctx, date, func(e *model.DailyLogEntry) error {
		return e.SetAmount(c, e.Amount(c)+amount)
	})
}

// FinishDay marks date as finished, creating an empty entry if needed.
func (s *LogStore) FinishDay(ctx context.Context, date string) (model.DailyLogEntry, error) {
	return s.update(ctx, date, func(e *model.DailyLogEntry) error {
		e.Cooking = true
		return nil
	})
}

func (s *LogStore) update(ctx context.Context, date string, fn func(*model.DailyLogEntry) error) (model.DailyLogEntry, error) {
	if _, err := model.ParseDate(date); err != nil {
		return model.DailyLogEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _, err := s.Get(ctx, date)
	if err != nil {
		return model.DailyLogEntry{}, err
	}
	e.Date = date
	if err := fn(&e); err != nil {
		return model.DailyLogEntry{}, err
	}
	if err := e.Validate(); err != nil {
		return model.DailyLogEntry{}, err
	}
	if err := s.upsertLocked(ctx, e); err != nil {
		return model.DailyLogEntry{}, err
	}
	return e, nil
}

func (s *LogStore) write(ctx context.Context, entries []model.DailyLogEntry) error {
	if entries == nil {
		entries = []model.DailyLogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding daily logs: %w", err)
	}
	return s.kv.Set(ctx, KeyDailyLogs, string(data))
}
