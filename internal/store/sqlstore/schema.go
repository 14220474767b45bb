package sqlstore

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS folders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		parent_id INTEGER REFERENCES folders (id) ON DELETE SET NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS prompts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		folder_id INTEGER REFERENCES folders (id) ON DELETE SET NULL,
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		is_template BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		color TEXT NOT NULL DEFAULT '#007bff',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_tags (
		prompt_id INTEGER NOT NULL REFERENCES prompts (id) ON DELETE CASCADE,
		tag_id INTEGER NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
		PRIMARY KEY (prompt_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_versions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		prompt_id INTEGER NOT NULL REFERENCES prompts (id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prompts_folder ON prompts (folder_id)`,
	`CREATE INDEX IF NOT EXISTS idx_prompt_tags_tag ON prompt_tags (tag_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS folders (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id BIGINT REFERENCES folders (id) ON DELETE SET NULL,
		created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS'),
		updated_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS')
	)`,
	`CREATE TABLE IF NOT EXISTS prompts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		folder_id BIGINT REFERENCES folders (id) ON DELETE SET NULL,
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		is_template BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS'),
		updated_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS')
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		color TEXT NOT NULL DEFAULT '#007bff',
		created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS')
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_tags (
		prompt_id BIGINT NOT NULL REFERENCES prompts (id) ON DELETE CASCADE,
		tag_id BIGINT NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
		PRIMARY KEY (prompt_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_versions (
		id BIGSERIAL PRIMARY KEY,
		prompt_id BIGINT NOT NULL REFERENCES prompts (id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'utc', 'YYYY-MM-DD HH24:MI:SS')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prompts_folder ON prompts (folder_id)`,
	`CREATE INDEX IF NOT EXISTS idx_prompt_tags_tag ON prompt_tags (tag_id)`,
}
