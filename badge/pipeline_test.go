package badge_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"problem-badge/badge"
	"problem-badge/models"
	"problem-badge/page/static"
	"problem-badge/utils"
)

const payload = `{"props":{"pageProps":{"dehydratedState":{"queries":[
	{"queryKey":["questionStats",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":5,"dislikes":6}}}},
	{"queryKey":["questionDetail",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":1200,"dislikes":300}}}}
]}}}}`

func page(body, script string) string {
	return `<!DOCTYPE html><html><head><title>Two Sum</title></head><body>` + body +
		`<script id="__NEXT_DATA__" type="application/json">` + script + `</script></body></html>`
}

const titleBody = `<nav><a href="/problems/two-sum/solutions">Solutions</a></nav>
<div class="title"><h3><a href="/problems/two-sum/">1. Two Sum</a></h3></div>
<aside style="font-size: 12px"><a href="/problems/two-sum/">Two Sum</a></aside>`

func load(t *testing.T, html, url string) *static.Document {
	t.Helper()
	doc, err := static.Parse(strings.NewReader(html), url)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func render(doc *static.Document) string {
	var buf bytes.Buffer
	_ = doc.Render(&buf)
	return buf.String()
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	site := badge.DefaultSite()
	p := badge.NewPipeline(site, utils.NewNopLogger())
	const problemURL = "https://leetcode.com/problems/two-sum/description/"

	Convey("Given a problem page with a title link and a payload", t, func() {
		doc := load(t, page(titleBody, payload), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then the badge is rendered after the title link", func() {
			So(res.Err, ShouldBeNil)
			So(res.Status, ShouldEqual, badge.StatusRendered)
			So(res.Slug, ShouldEqual, "two-sum")
			So(res.Badge, ShouldEqual, badge.BadgeCreated)
			So(res.Anchor, ShouldEqual, "1. Two Sum")
			So(res.Text, ShouldEqual, "👍 1.2k  👎 300 · 80% 👍")
			So(res.Note, ShouldEqual, "Source: __NEXT_DATA__.props.pageProps.dehydratedState (titleSlug=two-sum)")
			So(res.Metrics, ShouldNotBeNil)
			So(res.Metrics.Likes, ShouldEqual, 1200.0)

			out := render(doc)
			So(out, ShouldContainSubstring, `1. Two Sum</a><span id="lc-like-dislike-badge-v5"`)
			So(out, ShouldContainSubstring, `title="Source: __NEXT_DATA__.props.pageProps.dehydratedState (titleSlug=two-sum)"`)
			So(doc.CountByID(site.BadgeID), ShouldEqual, 1)
		})

		Convey("And running again reuses the same badge", func() {
			again := p.Run(ctx, doc)
			So(again.Status, ShouldEqual, badge.StatusRendered)
			So(again.Badge, ShouldEqual, badge.BadgeExisting)
			So(doc.CountByID(site.BadgeID), ShouldEqual, 1)
		})
	})

	Convey("Given a page that is not a problem page", t, func() {
		html := page(titleBody, payload)
		doc := load(t, html, "https://leetcode.com/discuss/general")
		before := render(doc)
		res := p.Run(ctx, doc)

		Convey("Then the run is skipped and the document is untouched", func() {
			So(res.Status, ShouldEqual, badge.StatusSkipped)
			So(res.Slug, ShouldBeEmpty)
			So(render(doc), ShouldEqual, before)
		})
	})

	Convey("Given an unparseable payload", t, func() {
		doc := load(t, page(titleBody, `{"props":`), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then the badge shows placeholders and explains why", func() {
			So(res.Status, ShouldEqual, badge.StatusNoPayload)
			So(res.Text, ShouldEqual, "👍 —  👎 —")
			So(res.Note, ShouldEqual, "Could not parse __NEXT_DATA__")
			So(doc.CountByID(site.BadgeID), ShouldEqual, 1)
		})
	})

	Convey("Given a payload without numeric counts", t, func() {
		doc := load(t, page(titleBody, `{"props":{"pageProps":{"dehydratedState":{"queries":[{"queryKey":["questionDetail"]}]}}}}`), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then the badge shows placeholders", func() {
			So(res.Status, ShouldEqual, badge.StatusNoMetrics)
			So(res.Text, ShouldEqual, "👍 —  👎 —")
			So(res.Note, ShouldEqual, "No likes/dislikes found in dehydratedState.queries")
		})
	})

	Convey("Given no problem links but a heading", t, func() {
		doc := load(t, page(`<main><h2>Two Sum</h2><p>text</p></main>`, payload), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then the badge goes after the heading", func() {
			So(res.Status, ShouldEqual, badge.StatusRendered)
			So(res.Anchor, ShouldBeEmpty)
			So(render(doc), ShouldContainSubstring, `Two Sum</h2><span id="lc-like-dislike-badge-v5"`)
		})
	})

	Convey("Given neither problem links nor headings", t, func() {
		doc := load(t, page(`<p>loading</p>`, payload), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then nothing is inserted", func() {
			So(res.Status, ShouldEqual, badge.StatusNoAnchor)
			So(doc.CountByID(site.BadgeID), ShouldEqual, 0)
		})
	})

	Convey("Given a hidden large title link", t, func() {
		body := `<h1 hidden><a href="/problems/two-sum/">Hidden Two Sum</a></h1>
<div style="display: none"><h1><a href="/problems/two-sum/">Collapsed Two Sum</a></h1></div>
<p><a href="/problems/two-sum/">Visible Two Sum</a></p>`
		doc := load(t, page(body, payload), problemURL)
		res := p.Run(ctx, doc)

		Convey("Then the visible link is used", func() {
			So(res.Anchor, ShouldEqual, "Visible Two Sum")
			So(render(doc), ShouldContainSubstring, `Visible Two Sum</a><span id="lc-like-dislike-badge-v5"`)
		})
	})

	Convey("Given a document that cannot be read", t, func() {
		res := p.Run(ctx, brokenDoc{})

		Convey("Then the run fails without panicking", func() {
			So(res.Status, ShouldEqual, badge.StatusFailed)
			So(errors.Is(res.Err, errBroken), ShouldBeTrue)
		})
	})
}

var errBroken = errors.New("target closed")

type brokenDoc struct{}

func (brokenDoc) Location(context.Context) (badge.Location, error) {
	return badge.Location{Href: "https://leetcode.com/problems/two-sum/", Path: "/problems/two-sum/"}, nil
}

func (brokenDoc) PayloadText(context.Context, string) (string, error) { return "", errBroken }

func (brokenDoc) AnchorCandidates(context.Context, string) ([]models.AnchorCandidate, error) {
	return nil, errBroken
}

func (brokenDoc) HasHeading(context.Context) (bool, error) { return false, errBroken }

func (brokenDoc) EnsureBadge(context.Context, string, int) (badge.BadgeState, error) {
	return badge.BadgeMissing, errBroken
}

func (brokenDoc) SetBadge(context.Context, string, string, string) error { return errBroken }

func TestStatusString(t *testing.T) {
	Convey("Statuses have readable names", t, func() {
		So(badge.StatusRendered.String(), ShouldEqual, "rendered")
		So(badge.StatusSkipped.String(), ShouldEqual, "skipped")
		So(badge.Status(42).String(), ShouldEqual, "status(42)")
	})
}
