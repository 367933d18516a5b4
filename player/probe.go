package player

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/where"
)

// ErrMissing is returned when the mpv executable cannot be found.
var ErrMissing = errors.New("mpv executable not found")

// ProbeResult describes the mpv installation found on the system.
type ProbeResult struct {
	Binary    string    `json:"binary"`
	Path      string    `json:"path"`
	Version   string    `json:"version"`
	CheckedAt time.Time `json:"checked_at"`
}

// Probe locates binary and reads its version. Successful probes are cached for lifetime so
// that startup does not spawn mpv twice.
func Probe(binary string, lifetime time.Duration) (*ProbeResult, error) {
	cacher := gache.New[*ProbeResult](&gache.Options{
		Path:       where.Probe(),
		Lifetime:   lifetime,
		FileSystem: &filesystem.GacheFs{},
	})

	if cached, expired, err := cacher.Get(); err == nil && !expired && cached != nil && cached.Binary == binary {
		if _, err := exec.LookPath(cached.Path); err == nil {
			return cached, nil
		}
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissing, binary)
	}

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("run %s --version: %w", path, err)
	}

	result := &ProbeResult{
		Binary:    binary,
		Path:      path,
		Version:   parseVersion(string(out)),
		CheckedAt: time.Now(),
	}

	_ = cacher.Set(result)
	return result, nil
}

// parseVersion extracts the version from the first line of `mpv --version`.
func parseVersion(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "mpv" {
		return "unknown"
	}
	return strings.TrimPrefix(fields[1], "v")
}
