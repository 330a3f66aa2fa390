package store

// migration holds a single schema migration with its target version and SQL.
// The SQL must run on both SQLite and PostgreSQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS jira_issues (
	id          TEXT PRIMARY KEY,
	message_ref TEXT NOT NULL,
	jira_key    TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	UNIQUE (message_ref, jira_key)
);

CREATE INDEX IF NOT EXISTS idx_jira_issues_jira_key ON jira_issues(jira_key);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS jira_statuses (
	status_id       INTEGER PRIMARY KEY,
	status_name     TEXT NOT NULL UNIQUE,
	status_category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS jira_issue_details (
	jira_key   TEXT PRIMARY KEY,
	status_id  INTEGER NOT NULL REFERENCES jira_statuses(status_id),
	summary    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

INSERT INTO jira_statuses (status_id, status_name, status_category) VALUES
	(1, 'Open', 'To Do'),
	(2, 'To Do', 'To Do'),
	(3, 'In Progress', 'In Progress'),
	(4, 'In Review', 'In Progress'),
	(5, 'Testing', 'In Progress'),
	(6, 'Done', 'Done'),
	(7, 'Closed', 'Done'),
	(8, 'Resolved', 'Done'),
	(9, 'Reopened', 'To Do'),
	(10, 'Backlog', 'To Do'),
	(11, 'Selected for Development', 'To Do'),
	(12, 'Blocked', 'In Progress'),
	(13, 'On Hold', 'In Progress'),
	(14, 'Cancelled', 'Done'),
	(15, 'Won''t Do', 'Done')
ON CONFLICT DO NOTHING;
`,
	},
}
