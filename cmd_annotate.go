package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"problem-badge/badge"
	"problem-badge/page/static"
	"problem-badge/scheduler"
)

var (
	annotateURL   string
	annotateOut   string
	annotateWatch bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <page.html>",
	Short: "Insert the badge into a saved page",
	Long: "Reads a saved problem page, inserts the like/dislike badge after its title " +
		"and writes the result to --out (stdout by default). With --watch the page is " +
		"re-annotated every time the input file changes.",
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().StringVar(&annotateURL, "url", "", "Address the page was saved from (required)")
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "", "Output file (default stdout)")
	annotateCmd.Flags().BoolVar(&annotateWatch, "watch", false, "Re-annotate whenever the input changes")
	_ = annotateCmd.MarkFlagRequired("url")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input := args[0]
	pipeline := badge.NewPipeline(siteFromConfig(cfg), logger)

	if !annotateWatch {
		_, err := annotateOnce(ctx, pipeline, input, annotateOut)
		return err
	}

	if annotateOut == "" {
		return errors.New("--watch needs --out")
	}
	if same, err := samePath(input, annotateOut); err != nil {
		return err
	} else if same {
		return errors.New("--out must differ from the input when watching")
	}

	sched := scheduler.New(cfg.Debounce(), func(runCtx context.Context) {
		if _, err := annotateOnce(runCtx, pipeline, input, annotateOut); err != nil {
			logger.Error("Annotate failed: %v", err)
		}
	}, logger)
	sched.Start(ctx, annotateURL)
	defer sched.Stop()

	logger.Info("Watching %s -> %s (Ctrl-C to stop)", input, annotateOut)
	return static.WatchFile(ctx, input, func() { sched.Notify(annotateURL) }, logger)
}

// annotateOnce parses input, runs the pipeline and writes the document. Pages
// the pipeline skips are written unchanged.
func annotateOnce(ctx context.Context, pipeline *badge.Pipeline, input, output string) (badge.Result, error) {
	doc, err := static.Load(input, annotateURL)
	if err != nil {
		return badge.Result{}, err
	}
	res := pipeline.Run(ctx, doc)
	logResult(res)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return res, fmt.Errorf("render HTML: %w", err)
	}
	if output == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return res, err
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Debug("Wrote %s (%s)", output, res.Status)
	return res, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
