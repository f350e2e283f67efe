// Package chrome runs the badge pipeline against a live Chrome tab over the
// DevTools protocol.
package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"problem-badge/config"
	"problem-badge/utils"
)

// bindingName is the page-side function the mutation observer reports through
const bindingName = "__problemBadgeChanged"

// Session owns one browser with one tab
type Session struct {
	cfg    *config.Config
	logger *utils.Logger
	tab    context.Context
	cancel context.CancelFunc
}

// NewSession launches Chrome. Cancelling parent closes the browser.
func NewSession(parent context.Context, cfg *config.Config, logger *utils.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &Session{
		cfg:    cfg,
		logger: logger,
		tab:    tab,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
	}

	// An empty Run starts the browser so launch errors surface here.
	if err := chromedp.Run(tab); err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Debug("Browser started (headless=%v)", cfg.Headless)
	return s, nil
}

// Context is the tab context; chromedp actions must run under it
func (s *Session) Context() context.Context {
	return s.tab
}

// Document returns the tab as a badge.Document
func (s *Session) Document() *Document {
	return &Document{tab: s.tab}
}

// Navigate loads url, retrying with backoff, then waits for client rendering
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Info("Loading %s", url)
	return utils.RetryWithBackoff(ctx, s.cfg.MaxRetries, time.Second, func() error {
		navCtx, cancel := context.WithTimeout(s.tab, s.cfg.NavigationTimeout())
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		if err := chromedp.Run(navCtx,
			chromedp.Navigate(url),
			chromedp.Sleep(s.cfg.Settle()), // give client rendering time
		); err != nil {
			return fmt.Errorf("navigate failed: %w", err)
		}
		return nil
	}, s.logger)
}

// Subscribe calls onChange with the current URL whenever the DOM changes
// outside the badge or the main frame navigates, including same-document
// (history API) navigation. onChange runs on the event goroutine and must not
// block or call back into chromedp.
func (s *Session) Subscribe(badgeID string, onChange func(href string)) error {
	chromedp.ListenTarget(s.tab, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventBindingCalled:
			if e.Name == bindingName {
				onChange(e.Payload)
			}
		case *page.EventNavigatedWithinDocument:
			onChange(e.URL)
		case *page.EventFrameNavigated:
			if e.Frame != nil && e.Frame.ParentID == "" {
				onChange(e.Frame.URL + e.Frame.URLFragment)
			}
		}
	})

	script, err := jsCall(observerJS, bindingName, badgeID)
	if err != nil {
		return err
	}
	var installed bool
	err = chromedp.Run(s.tab,
		runtime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx)
			return err
		}),
		chromedp.Evaluate(script, &installed),
	)
	if err != nil {
		return fmt.Errorf("failed to install mutation observer: %w", err)
	}
	s.logger.Debug("Mutation observer installed (already present: %v)", !installed)
	return nil
}

// Close shuts the tab and the browser
func (s *Session) Close() {
	s.cancel()
}
