package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timmy/pixgallery/internal/config"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/repository"
	"github.com/timmy/pixgallery/internal/service"
	"github.com/timmy/pixgallery/internal/view"
)

var (
	configPath string
	maxPages   int
	noHistory  bool
)

var rootCmd = &cobra.Command{
	Use:   "pixgallery-search <term>",
	Short: "Search Pixabay images from the terminal",
	Long: `Search Pixabay for images matching a term and print the results.

Pages are loaded one after another, like pressing "Load more" in the web
gallery, until --pages pages were shown or the results run out.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Logs go to stderr so stdout only carries results
		envCfg := logger.LoadFromEnv("pixgallery-search")
		envCfg.Output = os.Stderr
		if os.Getenv("LOG_LEVEL") == "" {
			envCfg.Level = "warn"
		}
		appLogger := logger.NewFromEnv(envCfg)
		logger.SetDefaultLogger(appLogger)
		defer logger.Sync()

		var history service.HistoryRecorder
		if cfg.Gallery.RecordHistory && !noHistory {
			db, err := repository.InitDB(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			history = repository.NewSearchRecordRepository(db)
		}

		searcher := pixabay.NewClient(pixabay.ConfigFrom(&cfg.Pixabay))
		gallery := service.NewGalleryService(searcher, history, appLogger, &service.GalleryConfig{
			PerPage: cfg.Pixabay.PerPage,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		term := view.NewTerminal(cmd.OutOrStdout())
		_, err = runSearch(ctx, gallery, term, joinArgs(args), maxPages)
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./configs/config.yaml)")
	rootCmd.Flags().IntVarP(&maxPages, "pages", "p", 1, "Maximum number of pages to load")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this search in the history database")
}
