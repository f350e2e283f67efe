package badge

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is shown for a count that is missing or not a number
const Placeholder = "—"

// Style is the inline style of a newly created badge
const Style = "margin-left: 10px; padding: 2px 8px; border-radius: 999px; font-size: 12px; " +
	"line-height: 18px; border: 1px solid rgba(128,128,128,0.35); display: inline-flex; " +
	"align-items: center; background: rgba(128,128,128,0.12); color: inherit; " +
	"user-select: none; white-space: nowrap;"

// BadgeState reports what EnsureBadge found or did
type BadgeState int

const (
	BadgeMissing BadgeState = iota // no anchor to attach to
	BadgeExisting
	BadgeCreated
)

func (s BadgeState) String() string {
	switch s {
	case BadgeExisting:
		return "existing"
	case BadgeCreated:
		return "created"
	default:
		return "missing"
	}
}

// FormatCount abbreviates a count: 1234 -> "1.2k", 2000000 -> "2M", 999 -> "999".
// Anything that is not a finite number renders as Placeholder.
func FormatCount(v any) string {
	n, ok := number(v)
	if !ok {
		return Placeholder
	}
	switch {
	case n >= 1_000_000:
		return abbreviate(n/1_000_000) + "M"
	case n >= 1_000:
		return abbreviate(n/1_000) + "k"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// abbreviate keeps one decimal and drops a trailing ".0". Rounding works on
// the exact binary value, so 1.15 (really 1.1499...) gives "1.1"; only exact
// ties such as 1.25 round up instead of to even.
func abbreviate(x float64) string {
	s := strconv.FormatFloat(x, 'f', 1, 64)
	if exact := strconv.FormatFloat(x, 'f', 64, 64); isExactTie(exact) {
		down, err := strconv.ParseFloat(exact[:strings.IndexByte(exact, '.')+2], 64)
		if err == nil {
			s = strconv.FormatFloat(down+0.1, 'f', 1, 64)
		}
	}
	return strings.TrimSuffix(s, ".0")
}

// isExactTie reports whether a full-precision decimal ends in exactly "d5"
// after the point, i.e. sits halfway between two one-decimal values
func isExactTie(exact string) bool {
	dot := strings.IndexByte(exact, '.')
	if dot < 0 || len(exact) < dot+3 || exact[dot+2] != '5' {
		return false
	}
	return strings.Trim(exact[dot+3:], "0") == ""
}

// Text builds the visible badge text, with an approval percentage when both
// counts are numbers and at least one is non-zero.
func Text(likes, dislikes any) string {
	text := fmt.Sprintf("👍 %s  👎 %s", FormatCount(likes), FormatCount(dislikes))
	l, okL := number(likes)
	d, okD := number(dislikes)
	if okL && okD && l+d > 0 {
		text += fmt.Sprintf(" · %d%% 👍", int(math.Round(l/(l+d)*100)))
	}
	return text
}

func number(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case uint64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
