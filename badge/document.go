package badge

import (
	"context"

	"problem-badge/models"
)

// Location is the navigation state of a document
type Location struct {
	Href string
	Path string
}

// Document is the page the pipeline reads from and renders into. A live browser
// tab and a parsed HTML file both implement it.
type Document interface {
	Location(ctx context.Context) (Location, error)
	// PayloadText returns the text content of the element with the given id,
	// or "" when there is no such element.
	PayloadText(ctx context.Context, elementID string) (string, error)
	// AnchorCandidates lists links whose href starts with hrefPrefix and whose
	// visible text is non-empty, in document order.
	AnchorCandidates(ctx context.Context, hrefPrefix string) ([]models.AnchorCandidate, error)
	// HasHeading reports whether an h1 or h2 exists for the HeadingRef fallback.
	HasHeading(ctx context.Context) (bool, error)
	// EnsureBadge returns the existing badge or creates one right after the
	// element designated by ref.
	EnsureBadge(ctx context.Context, badgeID string, ref int) (BadgeState, error)
	// SetBadge replaces the badge text and tooltip in one step.
	SetBadge(ctx context.Context, badgeID, text, title string) error
}
