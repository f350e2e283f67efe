package badge

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mustParse(t *testing.T, text string) any {
	t.Helper()
	v, err := ParsePayload(text)
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	return v
}

const twoCandidates = `{"props":{"pageProps":{"dehydratedState":{"queries":[
	{"queryKey":["questionStats",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":5,"dislikes":6}}}},
	{"queryKey":["questionDetail",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":1200,"dislikes":300}}}}
]}}}}`

func TestParsePayload(t *testing.T) {
	Convey("Given unusable payload text", t, func() {
		for _, text := range []string{"", "   \n", "{not json", "null"} {
			_, err := ParsePayload(text)
			So(errors.Is(err, ErrPayloadUnavailable), ShouldBeTrue)
		}
	})

	Convey("Given valid JSON", t, func() {
		v, err := ParsePayload(`{"props":{}}`)
		So(err, ShouldBeNil)
		So(v, ShouldNotBeNil)
	})
}

func TestExtract(t *testing.T) {
	site := DefaultSite()

	Convey("Given a tagged matching entry after an untagged one", t, func() {
		m, ok := site.Extract(mustParse(t, twoCandidates), "two-sum")

		Convey("Then the tagged matching entry wins", func() {
			So(ok, ShouldBeTrue)
			So(m.Likes, ShouldEqual, 1200.0)
			So(m.Dislikes, ShouldEqual, 300.0)
			So(m.Tag, ShouldEqual, "questionDetail")
			So(m.SourceSlug, ShouldEqual, "two-sum")
			So(m.HasSourceSlug, ShouldBeTrue)
		})
	})

	Convey("Given tagged entries for two slugs with the current one last", t, func() {
		payload := mustParse(t, `{"props":{"pageProps":{"dehydratedState":{"queries":[
			{"queryKey":["questionDetail",{"titleSlug":"add-two-numbers"}],"state":{"data":{"question":{"likes":10,"dislikes":20}}}},
			{"queryKey":["questionDetail",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":1200,"dislikes":300}}}}
		]}}}}`)
		m, ok := site.Extract(payload, "two-sum")

		Convey("Then the entry for the current slug wins over the earlier tagged one", func() {
			So(ok, ShouldBeTrue)
			So(m.Likes, ShouldEqual, 1200.0)
			So(m.Dislikes, ShouldEqual, 300.0)
			So(m.SourceSlug, ShouldEqual, "two-sum")
		})
	})

	Convey("Given a tagged entry for another slug", t, func() {
		payload := mustParse(t, `{"props":{"pageProps":{"dehydratedState":{"queries":[
			{"queryKey":["other"],"state":{"data":{"question":{"likes":1,"dislikes":2}}}},
			{"queryKey":["questionDetail",{"titleSlug":"add-two-numbers"}],"state":{"data":{"question":{"likes":10,"dislikes":20}}}}
		]}}}}`)
		m, ok := site.Extract(payload, "two-sum")

		Convey("Then any tagged entry beats the first one", func() {
			So(ok, ShouldBeTrue)
			So(m.Likes, ShouldEqual, 10.0)
			So(m.SourceSlug, ShouldEqual, "add-two-numbers")
		})
	})

	Convey("Given no tagged entries", t, func() {
		payload := mustParse(t, `{"props":{"pageProps":{"dehydratedState":{"queries":[
			{"queryKey":["a"],"state":{"data":{"question":{"likes":"many","dislikes":2}}}},
			{"queryKey":["b"],"state":{"data":{"question":{"likes":3,"dislikes":4}}}},
			{"queryKey":["c",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":5,"dislikes":6}}}}
		]}}}}`)
		m, ok := site.Extract(payload, "two-sum")

		Convey("Then the first numeric entry is used", func() {
			So(ok, ShouldBeTrue)
			So(m.Likes, ShouldEqual, 3.0)
			So(m.Dislikes, ShouldEqual, 4.0)
			So(m.HasSourceSlug, ShouldBeFalse)
		})
	})

	Convey("Given payloads without a numeric pair", t, func() {
		for _, text := range []string{
			`{}`,
			`[1,2,3]`,
			`42`,
			`{"props":{"pageProps":{"dehydratedState":{"queries":{}}}}}`,
			`{"props":{"pageProps":{"dehydratedState":{"queries":[]}}}}`,
			`{"props":{"pageProps":{"dehydratedState":{"queries":[null, 7, {"queryKey":"x"},
				{"queryKey":["questionDetail",{"titleSlug":"two-sum"}],"state":{"data":{"question":{"likes":1}}}}]}}}}`,
		} {
			_, ok := site.Extract(mustParse(t, text), "two-sum")
			So(ok, ShouldBeFalse)
		}
	})

	Convey("Given a site with a different preferred tag", t, func() {
		custom := site
		custom.PreferredTag = "questionStats"
		m, ok := custom.Extract(mustParse(t, twoCandidates), "two-sum")

		Convey("Then that tag is preferred", func() {
			So(ok, ShouldBeTrue)
			So(m.Likes, ShouldEqual, 5.0)
		})
	})
}
