package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/logger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile and every daily log",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Delete your profile and all daily logs?").
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			fmt.Println("  Nothing deleted.")
			return nil
		}
	}

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	if err := ledger.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	logger.Get().Info("ledger reset")
	fmt.Printf("  %s\n", cli.Good("Ledger cleared. Run `spendora onboard` to start again."))
	return nil
}
