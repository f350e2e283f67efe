// Package static implements badge.Document over a parsed HTML file. There is
// no layout engine, so geometry is derived from markup: hidden subtrees have
// zero size, font size comes from inline styles or heading defaults, and every
// candidate sits at the top so ties resolve in document order.
package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"problem-badge/badge"
	"problem-badge/models"
)

var (
	// ErrNoSuchRef is returned for an anchor ref the document did not hand out
	ErrNoSuchRef = errors.New("no such anchor ref")
	// ErrNoBadge is returned when setting text before the badge exists
	ErrNoBadge = errors.New("badge element not found")

	linkSelector    = cascadia.MustCompile("a[href]")
	headingSelector = cascadia.MustCompile("h1, h2")

	fontSizeRe = regexp.MustCompile(`font-size\s*:\s*([\d.]+)px`)
	displayRe  = regexp.MustCompile(`display\s*:\s*none`)
)

const defaultFontSize = 16

var headingFontSize = map[atom.Atom]float64{
	atom.H1: 32,
	atom.H2: 24,
	atom.H3: 18.72,
	atom.H4: 16,
	atom.H5: 13.28,
	atom.H6: 10.72,
}

// Document is a parsed page plus the location it was saved from
type Document struct {
	root       *html.Node
	loc        badge.Location
	candidates []*html.Node
}

// Parse reads HTML from r. pageURL is the address the page was served from.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return &Document{root: root, loc: badge.Location{Href: u.String(), Path: path}}, nil
}

// Load parses the HTML file at path
func Load(path, pageURL string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, pageURL)
}

func (d *Document) Location(context.Context) (badge.Location, error) {
	return d.loc, nil
}

func (d *Document) PayloadText(_ context.Context, elementID string) (string, error) {
	n := findByID(d.root, elementID)
	if n == nil {
		return "", nil
	}
	return textContent(n), nil
}

func (d *Document) AnchorCandidates(_ context.Context, hrefPrefix string) ([]models.AnchorCandidate, error) {
	d.candidates = d.candidates[:0]
	var out []models.AnchorCandidate
	for _, a := range cascadia.QueryAll(d.root, linkSelector) {
		href := attr(a, "href")
		text := strings.TrimSpace(textContent(a))
		if !strings.HasPrefix(href, hrefPrefix) || text == "" {
			continue
		}
		c := models.AnchorCandidate{
			Ref:      len(d.candidates),
			Href:     href,
			Text:     text,
			FontSize: fontSize(a),
		}
		if !hidden(a) {
			c.Width, c.Height = 1, 1
		}
		d.candidates = append(d.candidates, a)
		out = append(out, c)
	}
	return out, nil
}

func (d *Document) HasHeading(context.Context) (bool, error) {
	return cascadia.Query(d.root, headingSelector) != nil, nil
}

func (d *Document) EnsureBadge(_ context.Context, badgeID string, ref int) (badge.BadgeState, error) {
	if findByID(d.root, badgeID) != nil {
		return badge.BadgeExisting, nil
	}

	var target *html.Node
	switch {
	case ref == badge.HeadingRef:
		target = cascadia.Query(d.root, headingSelector)
	case ref >= 0 && ref < len(d.candidates):
		target = d.candidates[ref]
	default:
		return badge.BadgeMissing, fmt.Errorf("%w: %d", ErrNoSuchRef, ref)
	}
	if target == nil || target.Parent == nil {
		return badge.BadgeMissing, nil
	}

	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "id", Val: badgeID},
			{Key: "style", Val: badge.Style},
		},
	}
	target.Parent.InsertBefore(span, target.NextSibling)
	return badge.BadgeCreated, nil
}

func (d *Document) SetBadge(_ context.Context, badgeID, text, title string) error {
	n := findByID(d.root, badgeID)
	if n == nil {
		return ErrNoBadge
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	setAttr(n, "title", title)
	return nil
}

// Render writes the (possibly annotated) document as HTML
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// CountByID reports how many elements carry id; used to check the badge is unique
func (d *Document) CountByID(id string) int {
	count := 0
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			count++
		}
		return true
	})
	return count
}

func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants in document order until visit returns false
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hidden(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if hasAttr(n, "hidden") || displayRe.MatchString(strings.ToLower(attr(n, "style"))) {
			return true
		}
	}
	return false
}

func fontSize(n *html.Node) float64 {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if m := fontSizeRe.FindStringSubmatch(strings.ToLower(attr(n, "style"))); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v
			}
		}
		if size, ok := headingFontSize[n.DataAtom]; ok {
			return size
		}
	}
	return defaultFontSize
}

var _ badge.Document = (*Document)(nil)
