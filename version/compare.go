// Package version compares semantic versions, mainly to tell whether the installed mpv is recent
// enough for the IPC commands the player relies on.
package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// MinimumMpv is the oldest mpv release with the keep-open and hr-seek behaviour the player expects.
const MinimumMpv = "0.33.0"

// Compare performs a semantic comparison between two version strings. Anything after the patch
// number, such as a git suffix, is ignored.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	type version struct {
		major, minor, patch int
	}

	parse := func(s string) (version, error) {
		var v version
		_, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v.major, &v.minor, &v.patch)
		if err != nil {
			return v, fmt.Errorf("parse version %q: %w", s, err)
		}
		return v, nil
	}

	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

// Supported reports whether an mpv version satisfies MinimumMpv. Unparsable versions, as reported
// by development builds, are given the benefit of the doubt.
func Supported(mpv string) bool {
	comp, err := Compare(mpv, MinimumMpv)
	return err != nil || comp >= 0
}
