package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Paintersrp/promptorg/internal/store"
)

const folderColumns = `id, name, parent_id, created_at, updated_at`

func (s *Store) CreateFolder(ctx context.Context, name string, parentID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: folder name cannot be empty", store.ErrInvalid)
	}

	if parentID > 0 {
		if _, err := s.Folder(ctx, parentID); err != nil {
			return 0, fmt.Errorf("parent folder %d: %w", parentID, err)
		}
	}

	now := store.Now()
	id, err := s.insert(ctx, nil,
		`INSERT INTO folders (name, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, nullID(parentID), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("create folder %q: %w", name, err)
	}
	return id, nil
}

func (s *Store) Folder(ctx context.Context, id int64) (store.Folder, error) {
	row := s.queryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Folder{}, store.ErrNotFound
	}
	if err != nil {
		return store.Folder{}, fmt.Errorf("get folder %d: %w", id, err)
	}
	return f, nil
}

// Folders returns every folder ordered by name.
func (s *Store) Folders(ctx context.Context) ([]store.Folder, error) {
	rows, err := s.query(ctx, `SELECT `+folderColumns+` FROM folders ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return collectFolders(rows)
}

// ChildFolders returns the direct children of parentID; zero lists top-level
// folders.
func (s *Store) ChildFolders(ctx context.Context, parentID int64) ([]store.Folder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID <= 0 {
		rows, err = s.query(ctx, `SELECT `+folderColumns+` FROM folders WHERE parent_id IS NULL ORDER BY name, id`)
	} else {
		rows, err = s.query(ctx, `SELECT `+folderColumns+` FROM folders WHERE parent_id = ? ORDER BY name, id`, parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}
	return collectFolders(rows)
}

// FolderByName finds a folder by case-insensitive name. The first match by id
// wins when names repeat across the tree.
func (s *Store) FolderByName(ctx context.Context, name string) (store.Folder, error) {
	row := s.queryRow(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE LOWER(name) = LOWER(?) ORDER BY id LIMIT 1`,
		strings.TrimSpace(name),
	)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Folder{}, store.ErrNotFound
	}
	if err != nil {
		return store.Folder{}, fmt.Errorf("find folder %q: %w", name, err)
	}
	return f, nil
}

func (s *Store) RenameFolder(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: folder name cannot be empty", store.ErrInvalid)
	}
	err := affected(s.exec(ctx,
		`UPDATE folders SET name = ?, updated_at = ? WHERE id = ?`,
		name, store.Now(), id,
	))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("rename folder %d: %w", id, err)
	}
	return err
}

// DeleteFolder removes a folder, handing its child folders and prompts to the
// folder's parent.
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var parent sql.NullInt64
		err := tx.QueryRowContext(ctx, s.d.rebind(`SELECT parent_id FROM folders WHERE id = ?`), id).Scan(&parent)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get folder %d: %w", id, err)
		}

		if _, err := s.txExec(ctx, tx, `UPDATE folders SET parent_id = ? WHERE parent_id = ?`, parent, id); err != nil {
			return fmt.Errorf("reparent child folders: %w", err)
		}
		if _, err := s.txExec(ctx, tx, `UPDATE prompts SET folder_id = ? WHERE folder_id = ?`, parent, id); err != nil {
			return fmt.Errorf("move folder prompts: %w", err)
		}
		if _, err := s.txExec(ctx, tx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete folder %d: %w", id, err)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFolder(row scanner) (store.Folder, error) {
	var (
		f      store.Folder
		parent sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.Name, &parent, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return store.Folder{}, err
	}
	f.ParentID = parent.Int64
	return f, nil
}

func collectFolders(rows *sql.Rows) ([]store.Folder, error) {
	defer rows.Close()

	folders := make([]store.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}
