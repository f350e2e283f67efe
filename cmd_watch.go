package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"problem-badge/badge"
	"problem-badge/page/chrome"
	"problem-badge/scheduler"
)

var watchHeadful bool

var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Open a page and keep its badge up to date while you browse",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchHeadful, "headful", false, "Show the browser window")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if watchHeadful {
		cfg.Headless = false
	}

	session, err := chrome.NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(ctx, args[0]); err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}

	pipeline := badge.NewPipeline(siteFromConfig(cfg), logger)
	doc := session.Document()
	sched := scheduler.New(cfg.Debounce(), func(runCtx context.Context) {
		logResult(pipeline.Run(runCtx, doc))
	}, logger)

	if err := session.Subscribe(cfg.BadgeID, sched.Notify); err != nil {
		return err
	}
	sched.Start(ctx, args[0])
	logger.Info("Watching %s (Ctrl-C to stop)", args[0])

	<-ctx.Done()
	sched.Stop()
	logger.Info("Stopped after %d runs", sched.Runs())
	return nil
}
