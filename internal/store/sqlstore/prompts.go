package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/store"
)

const promptColumns = `p.id, p.title, p.content, p.folder_id, p.is_favorite, p.is_template, p.created_at, p.updated_at`

// CreatePrompt inserts a prompt and records its first version.
func (s *Store) CreatePrompt(ctx context.Context, np store.NewPrompt) (int64, error) {
	if strings.TrimSpace(np.Title) == "" {
		return 0, fmt.Errorf("%w: prompt title cannot be empty", store.ErrInvalid)
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := store.Now()
		var err error
		id, err = s.insert(ctx, tx,
			`INSERT INTO prompts (title, content, folder_id, is_favorite, is_template, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			np.Title, np.Content, nullID(np.FolderID), np.IsFavorite, np.IsTemplate, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert prompt: %w", err)
		}

		if _, err := s.txExec(ctx, tx,
			`INSERT INTO prompt_versions (prompt_id, content, created_at) VALUES (?, ?, ?)`,
			id, np.Content, now,
		); err != nil {
			return fmt.Errorf("insert first version: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("create prompt %q: %w", np.Title, err)
	}

	s.log.Debug("prompt created", zap.Int64("id", id))
	return id, nil
}

func (s *Store) Prompt(ctx context.Context, id int64) (store.Prompt, error) {
	row := s.queryRow(ctx, `SELECT `+promptColumns+` FROM prompts p WHERE p.id = ?`, id)
	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Prompt{}, store.ErrNotFound
	}
	if err != nil {
		return store.Prompt{}, fmt.Errorf("get prompt %d: %w", id, err)
	}
	return p, nil
}

// Prompts lists prompts matching f, most recently updated first.
func (s *Store) Prompts(ctx context.Context, f store.Filter) ([]store.Prompt, error) {
	q, args := buildPromptQuery(f)
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return collectPrompts(rows)
}

func buildPromptQuery(f store.Filter) (string, []any) {
	var (
		b          strings.Builder
		conditions []string
		args       []any
	)

	b.WriteString(`SELECT ` + promptColumns + ` FROM prompts p`)

	if len(f.TagIDs) > 0 {
		conditions = append(conditions,
			`EXISTS (SELECT 1 FROM prompt_tags pt WHERE pt.prompt_id = p.id AND pt.tag_id IN (`+placeholders(len(f.TagIDs))+`))`)
		for _, id := range f.TagIDs {
			args = append(args, id)
		}
	}

	if f.FolderID != nil {
		if *f.FolderID <= 0 {
			conditions = append(conditions, `p.folder_id IS NULL`)
		} else {
			conditions = append(conditions, `p.folder_id = ?`)
			args = append(args, *f.FolderID)
		}
	}

	if f.IsFavorite != nil {
		conditions = append(conditions, `p.is_favorite = ?`)
		args = append(args, *f.IsFavorite)
	}

	if f.IsTemplate != nil {
		conditions = append(conditions, `p.is_template = ?`)
		args = append(args, *f.IsTemplate)
	}

	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}
	b.WriteString(` ORDER BY p.updated_at DESC, p.id DESC`)

	return b.String(), args
}

// UpdatePrompt applies u and records a version when the content changes.
func (s *Store) UpdatePrompt(ctx context.Context, id int64, u store.PromptUpdate) error {
	if u.Empty() {
		return nil
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("%w: prompt title cannot be empty", store.ErrInvalid)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, s.d.rebind(`SELECT content FROM prompts WHERE id = ?`), id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get prompt %d: %w", id, err)
		}

		now := store.Now()
		var (
			sets []string
			args []any
		)
		if u.Title != nil {
			sets = append(sets, `title = ?`)
			args = append(args, *u.Title)
		}
		if u.Content != nil {
			sets = append(sets, `content = ?`)
			args = append(args, *u.Content)
			if *u.Content != current {
				if _, err := s.txExec(ctx, tx,
					`INSERT INTO prompt_versions (prompt_id, content, created_at) VALUES (?, ?, ?)`,
					id, *u.Content, now,
				); err != nil {
					return fmt.Errorf("record version: %w", err)
				}
			}
		}
		if u.FolderID != nil {
			sets = append(sets, `folder_id = ?`)
			args = append(args, nullID(*u.FolderID))
		}
		if u.IsFavorite != nil {
			sets = append(sets, `is_favorite = ?`)
			args = append(args, *u.IsFavorite)
		}
		if u.IsTemplate != nil {
			sets = append(sets, `is_template = ?`)
			args = append(args, *u.IsTemplate)
		}

		sets = append(sets, `updated_at = ?`)
		args = append(args, now, id)

		q := `UPDATE prompts SET ` + strings.Join(sets, `, `) + ` WHERE id = ?`
		if _, err := s.txExec(ctx, tx, q, args...); err != nil {
			return fmt.Errorf("update prompt %d: %w", id, err)
		}
		return nil
	})
}

func (s *Store) DeletePrompt(ctx context.Context, id int64) error {
	err := affected(s.exec(ctx, `DELETE FROM prompts WHERE id = ?`, id))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete prompt %d: %w", id, err)
	}
	return err
}

// DuplicatePrompt copies a prompt and its tags. An empty title becomes
// "<title> (copy)".
func (s *Store) DuplicatePrompt(ctx context.Context, id int64, title string) (int64, error) {
	src, err := s.Prompt(ctx, id)
	if err != nil {
		return 0, err
	}
	tags, err := s.PromptTags(ctx, id)
	if err != nil {
		return 0, err
	}

	if strings.TrimSpace(title) == "" {
		title = src.Title + " (copy)"
	}

	newID, err := s.CreatePrompt(ctx, store.NewPrompt{
		Title:      title,
		Content:    src.Content,
		FolderID:   src.FolderID,
		IsFavorite: src.IsFavorite,
		IsTemplate: src.IsTemplate,
	})
	if err != nil {
		return 0, err
	}

	for _, t := range tags {
		if err := s.AddTag(ctx, newID, t.ID); err != nil {
			return 0, err
		}
	}
	return newID, nil
}

// MovePrompts files every prompt in ids under folderID; zero removes them
// from any folder. It returns the number of prompts moved.
func (s *Store) MovePrompts(ctx context.Context, ids []int64, folderID int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if folderID > 0 {
		if _, err := s.Folder(ctx, folderID); err != nil {
			return 0, fmt.Errorf("folder %d: %w", folderID, err)
		}
	}

	args := []any{nullID(folderID), store.Now()}
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.exec(ctx,
		`UPDATE prompts SET folder_id = ?, updated_at = ? WHERE id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("move prompts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// PromptVersions returns the version history of a prompt, newest first.
func (s *Store) PromptVersions(ctx context.Context, id int64) ([]store.PromptVersion, error) {
	rows, err := s.query(ctx,
		`SELECT id, prompt_id, content, created_at FROM prompt_versions WHERE prompt_id = ? ORDER BY created_at DESC, id DESC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	versions := make([]store.PromptVersion, 0)
	for rows.Next() {
		var v store.PromptVersion
		if err := rows.Scan(&v.ID, &v.PromptID, &v.Content, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return versions, nil
}

func (s *Store) UntaggedPrompts(ctx context.Context) ([]store.Prompt, error) {
	rows, err := s.query(ctx,
		`SELECT `+promptColumns+` FROM prompts p
		 WHERE NOT EXISTS (SELECT 1 FROM prompt_tags pt WHERE pt.prompt_id = p.id)
		 ORDER BY p.updated_at DESC, p.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list untagged prompts: %w", err)
	}
	return collectPrompts(rows)
}

func scanPrompt(row scanner) (store.Prompt, error) {
	var (
		p      store.Prompt
		folder sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Title, &p.Content, &folder, &p.IsFavorite, &p.IsTemplate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return store.Prompt{}, err
	}
	p.FolderID = folder.Int64
	return p, nil
}

func collectPrompts(rows *sql.Rows) ([]store.Prompt, error) {
	defer rows.Close()

	prompts := make([]store.Prompt, 0)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}
	return prompts, nil
}
