// Package badge decides whether a page is a problem detail page, reads the
// likes/dislikes pair from its hydration payload and renders the counts into a
// single inline badge next to the page title.
package badge

// Site holds the host-specific names the pipeline depends on
type Site struct {
	PathMarker       string // first path segment of a problem page
	PayloadElementID string // id of the element carrying the hydration JSON
	PreferredTag     string // queryKey[0] of the query that describes the problem
	BadgeID          string
}

// DefaultSite returns the names used by leetcode.com
func DefaultSite() Site {
	return Site{
		PathMarker:       "problems",
		PayloadElementID: "__NEXT_DATA__",
		PreferredTag:     "questionDetail",
		BadgeID:          "lc-like-dislike-badge-v5",
	}
}
