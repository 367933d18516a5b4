// Package util provides small domain-agnostic helpers shared by the commands and the TUI.
package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vidscrub/vidscrub/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FileStem extracts the base filename from a path, excluding its extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Clamp bounds value to [low, high]. When high < low the lower bound wins.
func Clamp[T constraints.Ordered](value, low, high T) T {
	if value > high {
		value = high
	}
	if value < low {
		value = low
	}
	return value
}

// FormatTime renders seconds as m:ss, or h:mm:ss past the hour. Negative and non-finite values
// render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	hours, minutes, secs := total/3600, (total%3600)/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

var (
	unsafeFilename = regexp.MustCompile(`[^a-z0-9_-]+`)
	edgeSeparators = regexp.MustCompile(`^[_-]+|[_-]+$`)
)

// SanitizeFilename turns a free-form name into a lowercase file stem made of letters, digits,
// dashes and underscores. Runs of anything else collapse into one underscore.
func SanitizeFilename(name string) string {
	name = unsafeFilename.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return edgeSeparators.ReplaceAllString(name, "")
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
