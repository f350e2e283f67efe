package badge

import "strings"

// Slug returns the problem slug of path, e.g. "two-sum" for
// "/problems/two-sum/description". ok is false for any other page.
func (s Site) Slug(path string) (slug string, ok bool) {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 || parts[0] != s.PathMarker {
		return "", false
	}
	return parts[1], true
}

// ProblemPath is the href prefix of links pointing at the problem
func (s Site) ProblemPath(slug string) string {
	return "/" + s.PathMarker + "/" + slug
}
