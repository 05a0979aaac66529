// Onboarding Assistant knowledge ingester.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ashureev/onboard-assistant/internal/knowledge"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the ingest command.
func newRootCmd() *cobra.Command {
	var (
		url     string
		out     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Scrape a web page into the assistant's knowledge file",
		Long: `ingest fetches a single page, keeps its title and paragraph text,
and writes the result as the knowledge record the server answers questions from.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ingest(cmd.Context(), url, out, timeout); err != nil {
				slog.Error("Ingest failed", "url", url, "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", knowledge.DefaultURL, "Page to scrape")
	cmd.Flags().StringVar(&out, "out", knowledge.DefaultPath, "Output knowledge file")
	cmd.Flags().DurationVar(&timeout, "timeout", knowledge.DefaultFetchTimeout, "Fetch timeout")

	return cmd
}

func ingest(ctx context.Context, url, out string, timeout time.Duration) error {
	slog.Info("Scraping page", "url", url, "timeout", timeout)
	record, err := knowledge.NewExtractor(timeout).Extract(ctx, url)
	if err != nil {
		return fmt.Errorf("extract %s: %w", url, err)
	}

	if err := knowledge.Save(out, record); err != nil {
		return err
	}

	slog.Info("Knowledge saved", "path", out, "title", record.Title, "content_chars", len([]rune(record.Content)))
	return nil
}
