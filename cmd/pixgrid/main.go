// Package main is the entry point for the pixgrid CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmcdole/pixgrid/internal/adapter"
	"github.com/mmcdole/pixgrid/internal/adapter/source"
	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/service"
	"github.com/mmcdole/pixgrid/internal/store"
	"github.com/mmcdole/pixgrid/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

// flagKeys maps persistent flags onto their config keys
var flagKeys = map[string]string{
	"api-key":    "api.key",
	"safesearch": "api.safesearch",
	"per-page":   "api.per_page",
	"image-type": "api.image_type",
	"order":      "api.order",
}

var rootCmd = &cobra.Command{
	Use:   "pixgrid [query]",
	Short: "Search Pixabay images from the terminal",
	Long: `pixgrid searches the Pixabay image API as you type and shows the results
as a grid of cards. Scrolling to the bottom of the grid loads the next page.

Run without arguments to start with Pixabay's popular images, or pass a query
to start searching right away. An API key is read from the config file,
PIXGRID_API_KEY, PIXABAY_API_KEY or --api-key; pixgrid asks for one on first run.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	addConfigFlags(rootCmd)
}

// addConfigFlags registers the flags that override config values
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/pixgrid/config.yaml)")
	flags.String("api-key", "", "Pixabay API key")
	flags.Bool("safesearch", domain.DefaultSafeSearch, "only return images suitable for all ages")
	flags.Int("per-page", domain.DefaultPerPage, "results per page (3-200)")
	flags.String("image-type", "", "all, photo, illustration or vector")
	flags.String("order", "", "popular or latest")
}

// loadConfig builds the viper instance for cmd, binds its flags and
// decodes the result
func loadConfig(cmd *cobra.Command) (*adapter.Config, *viper.Viper, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v := adapter.NewViper(configFile)

	for name, key := range flagKeys {
		flag := cmd.Flag(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, nil, fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	cfg, err := adapter.LoadConfig(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, v, nil
}

// setupLogging installs the file logger, falling back to a null logger
func setupLogging(cfg *adapter.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
		closer = io.NopCloser(nil)
	}
	slog.SetDefault(logger)
	return logger, closer
}

// openCache returns the session page cache. A disk store that cannot be
// opened degrades to memory.
func openCache(cfg *adapter.Config, logger *slog.Logger) domain.PageCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	st, err := store.NewPageStore("", cfg.Cache.TTL)
	if err != nil {
		logger.Warn("page store unavailable, caching in memory", "error", err)
		return store.NewMemoryStore(cfg.Cache.TTL)
	}
	logger.Debug("page store opened", "dir", st.Dir())
	return st
}

// tuiOptions maps configuration onto model options
func tuiOptions(cfg *adapter.Config, query string) tui.Options {
	opts := tui.DefaultOptions()
	opts.Defaults = cfg.SearchDefaults()
	opts.InitialQuery = query
	opts.Debounce = cfg.Search.Debounce
	opts.Timeout = cfg.API.Timeout
	opts.BottomTolerance = cfg.Search.BottomTolerance
	opts.MaxColumns = cfg.UI.MaxColumns
	opts.ShowHelp = cfg.UI.ShowHelp
	return opts
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, v, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer := setupLogging(cfg)
	defer closer.Close()

	logger.Info("starting pixgrid", "version", version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, v, logger); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := source.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create image client: %w", err)
	}

	cache := openCache(cfg, logger)
	if cache != nil {
		defer cache.Close()
	}

	searchSvc := service.NewSearchService(client, cache, logger)
	launcher := adapter.NewLauncher(cfg.Browser, logger)
	viewerSvc := service.NewViewerService(launcher, logger)

	model := tui.NewModel(searchSvc, viewerSvc, tuiOptions(cfg, strings.Join(args, " ")), logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Shutdown()
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
