package store

type migration struct {
	version int
	sql     string
}

// migrations must stay sequential from 1. Every email column except id is
// nullable: ingestion may write partial documents.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS emails (
	id             TEXT PRIMARY KEY,
	message_id     TEXT UNIQUE,
	subject        TEXT,
	sender         TEXT,
	content        TEXT,
	date           DATETIME,
	classification TEXT,
	is_important   INTEGER,
	is_read        INTEGER,
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_emails_date ON emails(date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
