package chrome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"problem-badge/badge"
	"problem-badge/models"
)

// evalTimeout bounds a single script evaluation
const evalTimeout = 10 * time.Second

// ErrNoBadge is returned when setting text on a badge that is not in the page
var ErrNoBadge = errors.New("badge element not found")

// Document implements badge.Document over a live tab
type Document struct {
	tab context.Context
}

var _ badge.Document = (*Document)(nil)

func (d *Document) Location(ctx context.Context) (badge.Location, error) {
	var loc struct {
		Href string `json:"href"`
		Path string `json:"path"`
	}
	if err := d.eval(ctx, &loc, locationJS); err != nil {
		return badge.Location{}, err
	}
	return badge.Location{Href: loc.Href, Path: loc.Path}, nil
}

func (d *Document) PayloadText(ctx context.Context, elementID string) (string, error) {
	var text string
	err := d.eval(ctx, &text, payloadJS, elementID)
	return text, err
}

func (d *Document) AnchorCandidates(ctx context.Context, hrefPrefix string) ([]models.AnchorCandidate, error) {
	var cands []models.AnchorCandidate
	err := d.eval(ctx, &cands, anchorsJS, hrefPrefix)
	return cands, err
}

func (d *Document) HasHeading(ctx context.Context) (bool, error) {
	var ok bool
	err := d.eval(ctx, &ok, headingJS)
	return ok, err
}

func (d *Document) EnsureBadge(ctx context.Context, badgeID string, ref int) (badge.BadgeState, error) {
	var code int
	if err := d.eval(ctx, &code, ensureJS, badgeID, ref, badge.Style); err != nil {
		return badge.BadgeMissing, err
	}
	switch code {
	case 1:
		return badge.BadgeExisting, nil
	case 2:
		return badge.BadgeCreated, nil
	default:
		return badge.BadgeMissing, nil
	}
}

func (d *Document) SetBadge(ctx context.Context, badgeID, text, title string) error {
	var found bool
	if err := d.eval(ctx, &found, setTextJS, badgeID, text, title); err != nil {
		return err
	}
	if !found {
		return ErrNoBadge
	}
	return nil
}

// eval runs fn(args...) in the page. The call is bound to the tab and
// abandoned when ctx is done.
func (d *Document) eval(ctx context.Context, res any, fn string, args ...any) error {
	expr, err := jsCall(fn, args...)
	if err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(d.tab, evalTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, chromedp.Evaluate(expr, res)); err != nil {
		return fmt.Errorf("evaluate in page: %w", err)
	}
	return nil
}
