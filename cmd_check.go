package main

import (
	"os"

	"github.com/spf13/cobra"

	"problem-badge/badge"
	"problem-badge/page/chrome"
	"problem-badge/services"
	"problem-badge/utils"
)

var checkCmd = &cobra.Command{
	Use:   "check <url>...",
	Short: "Visit pages once each and report the badge they get",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, err := chrome.NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	pipeline := badge.NewPipeline(siteFromConfig(cfg), logger)
	limiter := utils.NewRateLimiter(cfg.RateLimitDelay)

	var reports []services.PageReport
	for _, url := range args {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		if err := session.Navigate(ctx, url); err != nil {
			logger.Error("Skipping %s: %v", url, err)
			reports = append(reports, services.PageReport{URL: url, Result: badge.Result{Href: url, Status: badge.StatusFailed, Err: err}})
			continue
		}
		res := pipeline.Run(ctx, session.Document())
		logResult(res)
		reports = append(reports, services.PageReport{URL: url, Result: res})
	}

	services.PrintBadgeReport(os.Stdout, reports)
	return ctx.Err()
}
