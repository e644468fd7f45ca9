package locate

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/feedpath"
	"github.com/dtnitsch/discuss-feed/pkg/manifest"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

// Report is what the locate command prints. Token is empty for the fixed
// data/latest.json path.
type Report struct {
	JSONPath  string           `json:"json_path" yaml:"json_path"`
	FeedPath  string           `json:"feed_path" yaml:"feed_path"`
	Token     string           `json:"token,omitempty" yaml:"token,omitempty"`
	Count     int              `json:"count" yaml:"count"`
	SizeBytes int64            `json:"size_bytes" yaml:"size_bytes"`
	UpdatedAt models.Timestamp `json:"updated_at" yaml:"updated_at"`
}

func LocateAction(c *cli.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	return Locate(os.Stdout, cfg, c.String("format"))
}

// Locate follows the manifest, verifies the feed it names and prints where
// it is.
func Locate(w io.Writer, cfg *models.Config, format string) error {
	s := &storage.Storage{}
	located, err := manifest.Locate(s, cfg.ProjectRoot, cfg.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to locate feed: %w", err)
	}
	stats, err := s.GetFileStats(located.FeedPath)
	if err != nil {
		return fmt.Errorf("failed to locate feed: %w", err)
	}
	tok, _ := feedpath.TokenOf(located.Record.JSONPath)

	return common.Print(w, format, Report{
		JSONPath:  located.Record.JSONPath,
		FeedPath:  located.FeedPath,
		Token:     tok,
		Count:     located.Record.Count,
		SizeBytes: stats.SizeBytes,
		UpdatedAt: located.Record.UpdatedAt,
	})
}
