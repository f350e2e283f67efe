package services

import (
	"fmt"
	"io"
	"strings"

	"problem-badge/badge"
)

// PageReport is the outcome of one visited page
type PageReport struct {
	URL    string
	Result badge.Result
}

// PrintBadgeReport formats per-page badge results as a terminal table
func PrintBadgeReport(w io.Writer, reports []PageReport) {
	border := strings.Repeat("═", 72)
	thin := strings.Repeat("─", 72)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("PROBLEM LIKE / DISLIKE BADGES", 72))
	fmt.Fprintf(w, "╚%s╝\n", border)

	counts := make(map[badge.Status]int)
	for _, r := range reports {
		counts[r.Result.Status]++
	}

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Pages visited : %d\n", len(reports))
	fmt.Fprintf(w, "  Rendered      : %d\n", counts[badge.StatusRendered])
	fmt.Fprintf(w, "  Placeholder   : %d\n", counts[badge.StatusNoPayload]+counts[badge.StatusNoMetrics])
	fmt.Fprintf(w, "  No anchor     : %d\n", counts[badge.StatusNoAnchor])
	fmt.Fprintf(w, "  Skipped       : %d\n", counts[badge.StatusSkipped])
	fmt.Fprintf(w, "  Failed        : %d\n", counts[badge.StatusFailed])

	if len(reports) > 0 {
		fmt.Fprintf(w, "\n PAGES\n%s\n", thin)
		for i, r := range reports {
			label := r.Result.Slug
			if label == "" {
				label = truncate(r.URL, 30)
			}
			fmt.Fprintf(w, "  %d. %-30s %-10s %s\n", i+1, truncate(label, 30), r.Result.Status, detail(r.Result))
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func detail(r badge.Result) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Text != "":
		return r.Text
	default:
		return r.Note
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
