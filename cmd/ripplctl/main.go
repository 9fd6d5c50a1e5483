package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rippl-backend/internal/client"
)

var (
	serverURL string
	token     string
)

var rootCmd = &cobra.Command{
	Use:           "ripplctl",
	Short:         "Browse and run missions on a rippl server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("RIPPL_SERVER", "http://localhost:8080"), "API base URL (env RIPPL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("RIPPL_TOKEN"), "session token (env RIPPL_TOKEN)")
}

func api() *client.Client {
	return client.New(serverURL, token)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
