package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/spendora/internal/config"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeAllowOrigin  string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web app (coach, profile, check-ins)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running server's status",
	Args:  cobra.NoArgs,
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeAllowOrigin, "allow-origin", "*", "Access-Control-Allow-Origin value")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	if appCfg.Server.Addr != "" {
		return appCfg.Server.Addr
	}
	return config.DefaultServerAddr
}

func runServe(_ *cobra.Command, _ []string) error {
	if config.GetLogLevel(appCfg) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	client := newCoach()
	svc := server.New(server.Config{
		Addr:         serveAddr(),
		AllowOrigin:  flagServeAllowOrigin,
		EventsBuffer: flagServeEventsBuffer,
	}, ledger, client, logger.Get())

	fmt.Printf("  spendora listening on http://%s\n", serveAddr())
	fmt.Printf("  Ledger: %s\n", config.DBPath(appCfg))
	if !client.HasKey() {
		fmt.Println("  Coach: no API key configured, /api routes will fail")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status check
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Started: %s (up %s)\n", st.StartedAt.Local().Format(time.RFC3339), time.Since(st.StartedAt).Round(time.Second))
	fmt.Printf("  Requests: %d\n", st.Requests)
	fmt.Printf("  Coach configured: %v\n", st.CoachConfigured)
	fmt.Printf("  Events: %d  Subscribers: %d\n", st.EventCount, st.SubscriberCount)
	return nil
}
