package manifest

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultPath is the manifest location relative to the project root. It is
// the only coordinate external automation should depend on.
const DefaultPath = "data/manifest.json"

var (
	// ErrOutsideRoot is returned when the feed does not live under the project root.
	ErrOutsideRoot = errors.New("feed path is outside the project root")
	// ErrFeedMissing is returned when the manifest points at a file that does not exist.
	ErrFeedMissing = errors.New("manifest points at a missing feed")
	// ErrCountMismatch is returned when the feed and manifest disagree on the item count.
	ErrCountMismatch = errors.New("feed count does not match manifest")
)

// RelativePath expresses feedPath relative to root with forward slashes,
// whatever the host separator.
func RelativePath(root, feedPath string) (string, error) {
	rel, err := filepath.Rel(root, feedPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return filepath.ToSlash(rel), nil
}

// Abs joins a manifest json_path back onto root.
func Abs(root, jsonPath string) string {
	return filepath.Join(root, filepath.FromSlash(jsonPath))
}
