package badge

import "problem-badge/models"

// Extract finds the likes/dislikes pair for slug in a parsed payload.
//
// Entries of props.pageProps.dehydratedState.queries without a numeric pair are
// ignored. Among the rest the preferred-tag entry for slug wins, then any
// preferred-tag entry, then the first one.
func (s Site) Extract(payload any, slug string) (models.Metrics, bool) {
	queries, ok := lookup(payload, "props", "pageProps", "dehydratedState", "queries").([]any)
	if !ok {
		return models.Metrics{}, false
	}

	var candidates []models.QueryEntry
	for _, q := range queries {
		if e := normalizeQuery(q); e.HasCounts {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return models.Metrics{}, false
	}

	best := candidates[0]
	if e, found := find(candidates, func(e models.QueryEntry) bool {
		return e.Tag == s.PreferredTag && e.HasTitleSlug && e.TitleSlug == slug
	}); found {
		best = e
	} else if e, found := find(candidates, func(e models.QueryEntry) bool {
		return e.Tag == s.PreferredTag
	}); found {
		best = e
	}

	return models.Metrics{
		Likes:         best.Likes,
		Dislikes:      best.Dislikes,
		Tag:           best.Tag,
		SourceSlug:    best.TitleSlug,
		HasSourceSlug: best.HasTitleSlug,
	}, true
}

// normalizeQuery flattens one raw query: queryKey[0] is the tag,
// queryKey[1].titleSlug the slug and state.data.question holds the counts.
func normalizeQuery(q any) models.QueryEntry {
	var e models.QueryEntry
	if key, ok := lookup(q, "queryKey").([]any); ok {
		if len(key) > 0 {
			e.Tag, _ = key[0].(string)
		}
		if len(key) > 1 {
			e.TitleSlug, e.HasTitleSlug = lookup(key[1], "titleSlug").(string)
		}
	}
	question := lookup(q, "state", "data", "question")
	likes, okL := lookup(question, "likes").(float64)
	dislikes, okD := lookup(question, "dislikes").(float64)
	if okL && okD {
		e.Likes, e.Dislikes, e.HasCounts = likes, dislikes, true
	}
	return e
}

func find(entries []models.QueryEntry, match func(models.QueryEntry) bool) (models.QueryEntry, bool) {
	for _, e := range entries {
		if match(e) {
			return e, true
		}
	}
	return models.QueryEntry{}, false
}

// lookup walks nested JSON objects; any missing or non-object step yields nil
func lookup(v any, keys ...string) any {
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[k]
	}
	return v
}
