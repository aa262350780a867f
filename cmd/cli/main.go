package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

var (
	baseURL   string
	tokenPath string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pokehub",
	Short: "Browse pokemon through a pokehub API server",
	Long: `pokehub talks to a running api-server.

The server remembers the last pokemon you searched. The session token that
links you to it is kept in the token file, so "pokehub stats" after
"pokehub search pikachu" shows pikachu's stats.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", envOr("POKEHUB_CLI_API", defaultBaseURL), "API base URL")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", defaultTokenPath(), "session token file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "HTTP timeout")

	rootCmd.AddCommand(
		searchCmd,
		randomCmd,
		currentCmd,
		rawCmd,
		statsCmd,
		movesCmd,
		typesCmd,
		compareCmd,
		teamCmd,
		eventsCmd,
		logoutCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
