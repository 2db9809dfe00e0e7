package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/spendora/internal/config"
	"github.com/theirongolddev/spendora/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Printf("    Ledger:         %s\n", config.DBPath(cfg))
	fmt.Printf("    Theme:          %s\n", cfg.General.Theme)
	fmt.Println()

	fmt.Println("  [Coach]")
	if key := config.GetCoachAPIKey(cfg); key != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Printf("    Base URL: %s\n", cfg.Coach.BaseURL)
	fmt.Printf("    Model:    %s\n", cfg.Coach.Model)
	fmt.Printf("    Referer:  %s\n", config.GetCoachReferer(cfg))
	fmt.Printf("    Title:    %s\n", cfg.Coach.Title)
	fmt.Printf("    Timeout:  %s\n", config.CoachTimeout(cfg))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", config.GetLogLevel(cfg))
	fmt.Printf("    File:  %s\n", config.LogPath(cfg))

	return printLedgerKeys(config.DBPath(cfg))
}

// printLedgerKeys lists stored keys without creating a missing database.
func printLedgerKeys(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return nil
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	keys, err := db.Keys(context.Background())
	if err != nil {
		return fmt.Errorf("list ledger keys: %w", err)
	}
	fmt.Println()
	fmt.Println("  [Ledger]")
	if len(keys) == 0 {
		fmt.Println("    (empty)")
		return nil
	}
	for _, k := range keys {
		fmt.Printf("    %-22s %6d bytes  %s\n", k.Key, k.Bytes, k.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
