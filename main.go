package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"problem-badge/badge"
	"problem-badge/config"
	"problem-badge/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:           "problem-badge",
	Short:         "Show like/dislike counts next to problem titles",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if debugFlag {
			cfg.Debug = true
		}
		logger = utils.NewLogger(cfg.Debug)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log every pipeline step")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// siteFromConfig maps configuration onto the pipeline's site names
func siteFromConfig(c *config.Config) badge.Site {
	return badge.Site{
		PathMarker:       c.PathMarker,
		PayloadElementID: c.PayloadElementID,
		PreferredTag:     c.PreferredTag,
		BadgeID:          c.BadgeID,
	}
}

// logResult writes one run outcome at a level matching its severity
func logResult(res badge.Result) {
	switch res.Status {
	case badge.StatusRendered:
		logger.Info("Badge for %s: %s", res.Slug, res.Text)
	case badge.StatusNoPayload, badge.StatusNoMetrics:
		logger.Warn("Badge for %s shows placeholders: %s", res.Slug, res.Note)
	case badge.StatusFailed:
		logger.Error("Badge run failed: %v", res.Err)
	default:
		logger.Debug("Badge run %s (%s)", res.Status, res.Href)
	}
}
