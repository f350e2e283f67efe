package badge

import (
	"math"

	"problem-badge/models"
)

// HeadingRef designates the first top-level heading of the document, used when
// no problem link qualifies as the title.
const HeadingRef = -1

// maxTopPenalty caps how far down the page a candidate is penalised
const maxTopPenalty = 2000

// Score rates a candidate as the page title: large text near the top wins
func Score(c models.AnchorCandidate) float64 {
	top := math.Min(math.Max(c.Top, 0), maxTopPenalty)
	return c.FontSize*10 - top/10
}

// SelectAnchor returns the best-scoring rendered candidate. Candidates with no
// width or height are hidden and never chosen; the first of equal scores wins.
func SelectAnchor(cands []models.AnchorCandidate) (models.AnchorCandidate, bool) {
	var (
		best      models.AnchorCandidate
		bestScore = math.Inf(-1)
		found     bool
	)
	for _, c := range cands {
		if c.Width <= 0 || c.Height <= 0 {
			continue
		}
		if s := Score(c); s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}
