package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmcdole/pixgrid/internal/adapter/source"
	"github.com/mmcdole/pixgrid/internal/export"
	"github.com/mmcdole/pixgrid/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Print search results without starting the TUI",
	Long: `Search fetches one or more result pages for a query and prints them as a
table, JSON or YAML. Pages are fetched in order and fetching stops early once
the result set is exhausted. An empty query lists popular images.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 1, "first page to fetch (1-based)")
	searchCmd.Flags().Int("pages", 1, "number of pages to fetch")
	searchCmd.Flags().StringP("format", "f", "text", "output format: "+strings.Join(export.Formats(), ", "))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	count, _ := cmd.Flags().GetInt("pages")
	formatName, _ := cmd.Flags().GetString("format")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if page < 1 {
		return fmt.Errorf("--page must be at least 1, got %d", page)
	}
	if count < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", count)
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer := setupLogging(cfg)
	defer closer.Close()

	client, err := source.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create image client: %w", err)
	}
	svc := service.NewSearchService(client, nil, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params := cfg.SearchDefaults().WithQuery(strings.TrimSpace(strings.Join(args, " ")))
	pages, fetchErr := svc.FetchPages(ctx, params, page, count)
	if fetchErr != nil && len(pages) == 0 {
		return fetchErr
	}

	if err := export.Write(cmd.OutOrStdout(), format, pages); err != nil {
		return err
	}
	if fetchErr != nil {
		return fmt.Errorf("stopped after %d page(s): %w", len(pages), fetchErr)
	}
	return nil
}
