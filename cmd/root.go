// Package cmd implements the spendora CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/config"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/store"
	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir string
	flagDate    string
	flagNoColor bool
)

// appCfg is loaded once per invocation by the root pre-run hook.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "spendora",
	Short:             "Budget ledger and coach for NYU students",
	Long:              "Plan a monthly budget from your living costs, log daily spending, and ask Violet for advice.",
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { logger.Sync() },
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Treat this YYYY-MM-DD date as today")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// setup loads .env files and config, applies the theme and starts the
// diagnostic logger. The server logs to stderr; every other command logs to
// a file so tables stay clean.
func setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	appCfg = cfg

	theme.SetActive(cfg.General.Theme)
	if flagNoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logPath := ""
	if cmd.Name() != "serve" {
		if err := os.MkdirAll(config.DataDir(cfg), 0o750); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		logPath = config.LogPath(cfg)
	}
	return logger.Init(config.GetLogLevel(cfg), logPath)
}

// openLedger opens the SQLite-backed ledger. Callers must invoke the
// returned close func.
func openLedger() (*store.Ledger, func(), error) {
	db, err := store.Open(config.DBPath(appCfg))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Get().Warn("closing ledger database failed", zap.Error(err))
		}
	}
	return store.NewLedger(db, logger.Get()), closeFn, nil
}

// newCoach builds the coach client from config and environment.
func newCoach() *coach.Client {
	return coach.NewClient(coach.Options{
		APIKey:  config.GetCoachAPIKey(appCfg),
		BaseURL: appCfg.Coach.BaseURL,
		Model:   appCfg.Coach.Model,
		Referer: config.GetCoachReferer(appCfg),
		Title:   appCfg.Coach.Title,
		Logger:  logger.Get(),
	})
}

// coachContext bounds one coach call by the configured timeout.
func coachContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.CoachTimeout(appCfg))
}

// today returns --date, or the local calendar date.
func today() (time.Time, error) {
	if flagDate == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := model.ParseDate(flagDate)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// ledgerState is everything a read-only view needs from the ledger.
type ledgerState struct {
	Profile model.Profile
	Budget  model.MonthlyBudget
	Logs    []model.DailyLogEntry
}

func loadState(ctx context.Context, ledger *store.Ledger) (ledgerState, error) {
	p, err := ledger.Profiles.Load(ctx)
	if err != nil {
		return ledgerState{}, fmt.Errorf("load profile: %w", err)
	}
	logs, err := ledger.Logs.All(ctx)
	if err != nil {
		return ledgerState{}, fmt.Errorf("load daily logs: %w", err)
	}
	return ledgerState{Profile: p, Budget: budget.Derive(p), Logs: logs}, nil
}

// requireProfile prints a hint and reports false when onboarding never ran.
func requireProfile(ctx context.Context, ledger *store.Ledger) (bool, error) {
	ok, err := ledger.Profiles.Exists(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("\n  No budget profile yet.")
		fmt.Println("  Run `spendora onboard` to set one up.")
	}
	return ok, nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
