package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendora/internal/config"
	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the coach API key, theme and server address",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Reload so a --data-dir override is not persisted.
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	apiKey := ""
	keyDesc := "Used for Violet. Leave blank to keep the current value."
	if existing := config.GetCoachAPIKey(cfg); existing != "" {
		keyDesc = fmt.Sprintf("Current: %s. Leave blank to keep it.", maskAPIKey(existing))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	modelName := cfg.Coach.Model
	themeName := cfg.General.Theme
	addr := cfg.Server.Addr

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendora").
				Description("Settings are saved to "+config.ConfigPath()),
			huh.NewInput().
				Title("Coach API key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Coach model").
				Value(&modelName),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewInput().
				Title("Server address").
				Description("Used by `spendora serve`").
				Validate(func(s string) error {
					if !strings.Contains(s, ":") {
						return errors.New("expected host:port")
					}
					return nil
				}).
				Value(&addr),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if k := strings.TrimSpace(apiKey); k != "" {
		cfg.Coach.APIKey = k
	}
	if m := strings.TrimSpace(modelName); m != "" {
		cfg.Coach.Model = m
	}
	cfg.General.Theme = themeName
	cfg.Server.Addr = strings.TrimSpace(addr)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `spendora setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
