package history

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Every URL ever published. Timestamps are TEXT in the feed's
-- second-precision UTC layout, so they sort lexically.
CREATE TABLE IF NOT EXISTS items (
    url TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    company TEXT NOT NULL,
    first_seen TEXT NOT NULL,
    last_seen TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_company ON items(company);
CREATE INDEX IF NOT EXISTS idx_items_first_seen ON items(first_seen);

-- One row per publication run.
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    json_path TEXT NOT NULL,
    item_count INTEGER NOT NULL,
    feed_digest TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
