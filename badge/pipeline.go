package badge

import (
	"context"
	"fmt"

	"problem-badge/utils"
)

// Status is the outcome of one pipeline run
type Status int

const (
	StatusSkipped   Status = iota // not a problem page
	StatusNoAnchor                // nothing to attach the badge to
	StatusNoPayload               // badge shows placeholders, payload unreadable
	StatusNoMetrics               // badge shows placeholders, no numeric pair
	StatusRendered
	StatusFailed // the document could not be read or written
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusNoAnchor:
		return "no-anchor"
	case StatusNoPayload:
		return "no-payload"
	case StatusNoMetrics:
		return "no-metrics"
	case StatusRendered:
		return "rendered"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result describes what a run saw and did
type Result struct {
	Href    string
	Slug    string
	Status  Status
	Badge   BadgeState
	Anchor  string // text of the chosen anchor, empty for the heading fallback
	Metrics *MetricsView
	Text    string
	Note    string
	Err     error
}

// MetricsView is the rendered subset of the extracted metrics
type MetricsView struct {
	Likes    float64
	Dislikes float64
	Slug     string
}

// Pipeline runs the badge steps against a document
type Pipeline struct {
	site   Site
	logger *utils.Logger
}

// NewPipeline creates a Pipeline for site
func NewPipeline(site Site, logger *utils.Logger) *Pipeline {
	return &Pipeline{site: site, logger: logger}
}

// Site returns the names the pipeline was built with
func (p *Pipeline) Site() Site {
	return p.site
}

// Run executes one complete attempt. It never panics or returns an error:
// every failure is reported in the Result and logged.
func (p *Pipeline) Run(ctx context.Context, doc Document) Result {
	loc, err := doc.Location(ctx)
	if err != nil {
		return p.fail(Result{}, "read location", err)
	}
	res := Result{Href: loc.Href}

	slug, ok := p.site.Slug(loc.Path)
	if !ok {
		res.Status = StatusSkipped
		p.logger.Debug("Not a problem page: %s", loc.Path)
		return res
	}
	res.Slug = slug

	ref, anchorText, err := p.locateAnchor(ctx, doc, slug)
	if err != nil {
		return p.fail(res, "locate anchor", err)
	}
	if ref == nil {
		res.Status = StatusNoAnchor
		p.logger.Debug("No title anchor for %s yet", slug)
		return res
	}
	res.Anchor = anchorText

	res.Badge, err = doc.EnsureBadge(ctx, p.site.BadgeID, *ref)
	if err != nil {
		return p.fail(res, "ensure badge", err)
	}
	if res.Badge == BadgeMissing {
		res.Status = StatusNoAnchor
		return res
	}

	text, err := doc.PayloadText(ctx, p.site.PayloadElementID)
	if err != nil {
		return p.fail(res, "read payload", err)
	}
	payload, err := ParsePayload(text)
	if err != nil {
		p.logger.Debug("Failed to parse %s: %v", p.site.PayloadElementID, err)
		res.Status = StatusNoPayload
		return p.render(ctx, doc, res, nil, nil, fmt.Sprintf("Could not parse %s", p.site.PayloadElementID))
	}

	m, ok := p.site.Extract(payload, slug)
	if !ok {
		p.logger.Debug("No likes/dislikes found; slug=%s", slug)
		res.Status = StatusNoMetrics
		return p.render(ctx, doc, res, nil, nil, "No likes/dislikes found in dehydratedState.queries")
	}

	source := m.SourceSlug
	if !m.HasSourceSlug || source == "" {
		source = "?"
	}
	res.Status = StatusRendered
	res.Metrics = &MetricsView{Likes: m.Likes, Dislikes: m.Dislikes, Slug: m.SourceSlug}
	res = p.render(ctx, doc, res, m.Likes, m.Dislikes,
		fmt.Sprintf("Source: %s.props.pageProps.dehydratedState (titleSlug=%s)", p.site.PayloadElementID, source))
	if res.Status == StatusRendered {
		p.logger.Debug("Rendered %s: likes=%v dislikes=%v tag=%s", slug, m.Likes, m.Dislikes, m.Tag)
	}
	return res
}

// locateAnchor picks the best problem link, falling back to the first heading.
// A nil ref means neither exists.
func (p *Pipeline) locateAnchor(ctx context.Context, doc Document, slug string) (*int, string, error) {
	cands, err := doc.AnchorCandidates(ctx, p.site.ProblemPath(slug))
	if err != nil {
		return nil, "", err
	}
	if best, ok := SelectAnchor(cands); ok {
		return &best.Ref, best.Text, nil
	}
	hasHeading, err := doc.HasHeading(ctx)
	if err != nil || !hasHeading {
		return nil, "", err
	}
	ref := HeadingRef
	return &ref, "", nil
}

func (p *Pipeline) render(ctx context.Context, doc Document, res Result, likes, dislikes any, note string) Result {
	res.Text = Text(likes, dislikes)
	res.Note = note
	if err := doc.SetBadge(ctx, p.site.BadgeID, res.Text, note); err != nil {
		return p.fail(res, "set badge text", err)
	}
	return res
}

func (p *Pipeline) fail(res Result, step string, err error) Result {
	res.Status = StatusFailed
	res.Err = fmt.Errorf("%s: %w", step, err)
	p.logger.Debug("Badge run failed: %v", res.Err)
	return res
}
