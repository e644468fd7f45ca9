// Package feedpath computes where the data feed is written for a run.
package feedpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/discuss-feed/pkg/token"
)

const (
	DataDir    = "data"
	LatestName = "latest.json"
)

// Options selects between the fixed path and a token-derived one.
type Options struct {
	Randomize bool
	Stable    bool
	Salt      string
}

// Latest returns the fixed, well-known feed location under root.
func Latest(root string) string {
	return filepath.Join(root, DataDir, LatestName)
}

// Rotated returns data/<tok>/<tok>.json under root.
func Rotated(root, tok string) string {
	return filepath.Join(root, DataDir, tok, tok+".json")
}

// Resolve returns the absolute feed path for a run at now and makes sure
// its parent directory exists. An existing directory is fine; any other
// filesystem failure is returned.
func Resolve(opts Options, root string, now time.Time) (string, error) {
	path := Latest(root)
	if opts.Randomize {
		tok, err := token.Generate(opts.Stable, opts.Salt, now)
		if err != nil {
			return "", fmt.Errorf("failed to generate path token: %w", err)
		}
		path = Rotated(root, tok)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create feed directory %s: %w", dir, err)
	}
	return path, nil
}

// TokenOf extracts the token from a rotated path, relative or absolute,
// with either separator. It reports false for the fixed path or any path
// whose directory and file stem disagree.
func TokenOf(path string) (string, bool) {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 3 {
		return "", false
	}
	dir, file := parts[len(parts)-2], parts[len(parts)-1]
	stem, ok := strings.CutSuffix(file, ".json")
	if !ok || stem != dir || !token.Pattern.MatchString(stem) {
		return "", false
	}
	if parts[len(parts)-3] != DataDir {
		return "", false
	}
	return stem, true
}
