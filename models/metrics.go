package models

// QueryEntry is one normalized entry of the hydration payload's query list.
// Likes and Dislikes are only meaningful when HasCounts is true.
type QueryEntry struct {
	Tag          string
	TitleSlug    string
	HasTitleSlug bool
	Likes        float64
	Dislikes     float64
	HasCounts    bool
}

// Metrics is the likes/dislikes pair selected for rendering
type Metrics struct {
	Likes         float64
	Dislikes      float64
	Tag           string
	SourceSlug    string
	HasSourceSlug bool
}

// AnchorCandidate is a hyperlink that may serve as the page title.
// Ref is an opaque handle understood by the document that produced it.
type AnchorCandidate struct {
	Ref      int     `json:"ref"`
	Href     string  `json:"href"`
	Text     string  `json:"text"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"fontSize"`
	Top      float64 `json:"top"`
}
