package chrome

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJSCall(t *testing.T) {
	Convey("Given a page function and arguments", t, func() {
		expr, err := jsCall(`function(a, b, c) { return a; }`, `x"); alert("y`, -1, "lc-like-dislike-badge-v5")

		Convey("Then arguments are JSON-encoded, not spliced", func() {
			So(err, ShouldBeNil)
			So(expr, ShouldStartWith, "(function(a, b, c) { return a; })(")
			So(expr, ShouldEndWith, `, -1, "lc-like-dislike-badge-v5")`)
			So(expr, ShouldContainSubstring, `"x\"); alert(\"y"`)
		})
	})

	Convey("Given no arguments", t, func() {
		expr, err := jsCall(locationJS)
		So(err, ShouldBeNil)
		So(strings.HasSuffix(expr, ")()"), ShouldBeTrue)
	})

	Convey("Given an argument that cannot be encoded", t, func() {
		_, err := jsCall(payloadJS, make(chan int))
		So(err, ShouldNotBeNil)
	})
}
