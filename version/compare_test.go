package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions are compared field by field", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"0.37.0", "0.33.0", 1},
			{"v0.33.0", "0.33.0", 0},
			{"0.32.9", "0.33.0", -1},
			{"1.0.0", "0.99.99", 1},
			{"0.38.0-440-gabcdef", "0.38.0", 0},
		} {
			comp, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(comp, ShouldEqual, c.want)
		}
	})

	Convey("Garbage is rejected", t, func() {
		_, err := Compare("git-master", "0.33.0")
		So(err, ShouldNotBeNil)
	})
}

func TestSupported(t *testing.T) {
	Convey("The mpv requirement", t, func() {
		So(Supported("0.36.0"), ShouldBeTrue)
		So(Supported(MinimumMpv), ShouldBeTrue)
		So(Supported("0.29.1"), ShouldBeFalse)
		So(Supported("unknown"), ShouldBeTrue)
	})
}
