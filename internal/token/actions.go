package token

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	"github.com/dtnitsch/discuss-feed/internal/config"
	"github.com/dtnitsch/discuss-feed/pkg/feedpath"
	tokenpkg "github.com/dtnitsch/discuss-feed/pkg/token"
)

// Report is what the token command prints.
type Report struct {
	Date     string `json:"date" yaml:"date"`
	Token    string `json:"token" yaml:"token"`
	Stable   bool   `json:"stable" yaml:"stable"`
	JSONPath string `json:"json_path" yaml:"json_path"`
}

func TokenAction(c *cli.Context) error {
	salt := c.String("salt")
	if !c.IsSet("salt") {
		salt = config.Salt(os.LookupEnv)
	}

	day := time.Now().UTC()
	if c.IsSet("date") {
		parsed, err := time.Parse(time.DateOnly, c.String("date"))
		if err != nil {
			return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
		}
		day = parsed
	}

	report, err := Build(salt, day, c.Bool("random"))
	if err != nil {
		return err
	}
	return Print(os.Stdout, c.String("format"), report)
}

// Build computes the token and the rotated feed path for day. The token is
// stable unless random is set or salt is empty.
func Build(salt string, day time.Time, random bool) (*Report, error) {
	stable := !random && salt != ""
	tok, err := tokenpkg.Generate(stable, salt, day)
	if err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(filepath.Join(feedpath.DataDir, tok, tok+".json"))
	return &Report{
		Date:     day.UTC().Format(time.DateOnly),
		Token:    tok,
		Stable:   stable,
		JSONPath: rel,
	}, nil
}

func Print(w io.Writer, format string, r *Report) error {
	return common.Print(w, format, r)
}
