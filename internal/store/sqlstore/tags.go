package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Paintersrp/promptorg/internal/store"
)

const tagColumns = `t.id, t.name, t.color, t.created_at`

// CreateTag inserts a tag. Names are unique; a clash returns
// store.ErrDuplicate.
func (s *Store) CreateTag(ctx context.Context, name, color string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: tag name cannot be empty", store.ErrInvalid)
	}
	if strings.TrimSpace(color) == "" {
		color = store.DefaultTagColor
	}

	id, err := s.insert(ctx, nil,
		`INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, store.Now(),
	)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("tag %q: %w", name, store.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("create tag %q: %w", name, err)
	}
	return id, nil
}

// EnsureTag returns the id of the named tag, creating it when missing.
func (s *Store) EnsureTag(ctx context.Context, name, color string) (int64, error) {
	t, err := s.TagByName(ctx, name)
	if err == nil {
		return t.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	return s.CreateTag(ctx, name, color)
}

// Tags lists every tag ordered by name.
func (s *Store) Tags(ctx context.Context) ([]store.Tag, error) {
	rows, err := s.query(ctx, `SELECT `+tagColumns+` FROM tags t ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return collectTags(rows)
}

func (s *Store) TagByName(ctx context.Context, name string) (store.Tag, error) {
	row := s.queryRow(ctx, `SELECT `+tagColumns+` FROM tags t WHERE t.name = ?`, strings.TrimSpace(name))

	var t store.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Tag{}, store.ErrNotFound
	}
	if err != nil {
		return store.Tag{}, fmt.Errorf("find tag %q: %w", name, err)
	}
	return t, nil
}

// PromptTags lists the tags attached to a prompt ordered by name.
func (s *Store) PromptTags(ctx context.Context, promptID int64) ([]store.Tag, error) {
	rows, err := s.query(ctx,
		`SELECT `+tagColumns+` FROM tags t
		 JOIN prompt_tags pt ON t.id = pt.tag_id
		 WHERE pt.prompt_id = ?
		 ORDER BY t.name`,
		promptID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags for prompt %d: %w", promptID, err)
	}
	return collectTags(rows)
}

// AddTag attaches a tag to a prompt. Attaching twice is not an error.
func (s *Store) AddTag(ctx context.Context, promptID, tagID int64) error {
	if _, err := s.Prompt(ctx, promptID); err != nil {
		return fmt.Errorf("prompt %d: %w", promptID, err)
	}

	var exists int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM tags WHERE id = ?`, tagID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check tag %d: %w", tagID, err)
	}
	if exists == 0 {
		return fmt.Errorf("tag %d: %w", tagID, store.ErrNotFound)
	}

	if _, err := s.exec(ctx,
		`INSERT INTO prompt_tags (prompt_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		promptID, tagID,
	); err != nil {
		return fmt.Errorf("tag prompt %d: %w", promptID, err)
	}
	return nil
}

func (s *Store) RemoveTag(ctx context.Context, promptID, tagID int64) error {
	err := affected(s.exec(ctx, `DELETE FROM prompt_tags WHERE prompt_id = ? AND tag_id = ?`, promptID, tagID))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("untag prompt %d: %w", promptID, err)
	}
	return err
}

func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	err := affected(s.exec(ctx, `DELETE FROM tags WHERE id = ?`, id))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return err
}

func collectTags(rows *sql.Rows) ([]store.Tag, error) {
	defer rows.Close()

	tags := make([]store.Tag, 0)
	for rows.Next() {
		var t store.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}
