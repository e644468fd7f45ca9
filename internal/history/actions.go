package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	historypkg "github.com/dtnitsch/discuss-feed/pkg/history"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

// FormatTable prints a fixed-width table.
const FormatTable = "table"

// ErrDisabled is returned when output.history_db is empty.
var ErrDisabled = errors.New("run history is disabled (output.history_db is empty)")

func HistoryAction(c *cli.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return ErrDisabled
	}
	return Show(os.Stdout, cfg.HistoryDB, c.Int("limit"), c.String("format"))
}

// Show lists the runs stored at dbPath. A database that does not exist yet
// is reported as empty and is not created.
func Show(w io.Writer, dbPath string, limit int, format string) error {
	if !(&storage.Storage{}).HasFile(dbPath) {
		if format != FormatTable {
			return common.Print(w, format, []historypkg.Run{})
		}
		fmt.Fprintf(w, "No runs found in %s\n", dbPath)
		return nil
	}

	database, err := historypkg.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	return List(w, database, limit, format)
}

// List prints the most recent runs.
func List(w io.Writer, database *historypkg.DB, limit int, format string) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []historypkg.Run{}
	}

	if format != FormatTable {
		return common.Print(w, format, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs found in %s\n", database.Path())
		return nil
	}

	fmt.Fprintf(w, "%-36s %-25s %-6s %-16s %s\n", "Run ID", "Started", "Items", "Digest", "JSON Path")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s %-25s %-6d %-16s %s\n",
			r.ID,
			r.StartedAt,
			r.ItemCount,
			shortDigest(r.FeedDigest),
			r.JSONPath,
		)
	}
	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	return nil
}

func shortDigest(d string) string {
	if len(d) > 16 {
		return d[:16]
	}
	return d
}
