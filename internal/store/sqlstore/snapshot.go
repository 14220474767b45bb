package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/store"
)

func (s *Store) Statistics(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	row := s.queryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM prompts),
		(SELECT COUNT(*) FROM prompts WHERE is_favorite = ?),
		(SELECT COUNT(*) FROM prompts WHERE is_template = ?),
		(SELECT COUNT(*) FROM prompts p WHERE NOT EXISTS (SELECT 1 FROM prompt_tags pt WHERE pt.prompt_id = p.id)),
		(SELECT COUNT(*) FROM folders),
		(SELECT COUNT(*) FROM tags)`,
		true, true,
	)
	if err := row.Scan(&st.Prompts, &st.Favorites, &st.Templates, &st.Untagged, &st.Folders, &st.Tags); err != nil {
		return store.Stats{}, fmt.Errorf("collect statistics: %w", err)
	}
	return st, nil
}

// Export copies the whole library. Each prompt carries its tags for
// convenience in addition to the prompt_tags links.
func (s *Store) Export(ctx context.Context) (store.Snapshot, error) {
	folders, err := s.Folders(ctx)
	if err != nil {
		return store.Snapshot{}, err
	}
	tags, err := s.Tags(ctx)
	if err != nil {
		return store.Snapshot{}, err
	}
	prompts, err := s.Prompts(ctx, store.Filter{})
	if err != nil {
		return store.Snapshot{}, err
	}
	links, err := s.links(ctx)
	if err != nil {
		return store.Snapshot{}, err
	}

	byID := make(map[int64]store.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	perPrompt := make(map[int64][]store.Tag)
	for _, l := range links {
		if t, ok := byID[l.TagID]; ok {
			perPrompt[l.PromptID] = append(perPrompt[l.PromptID], t)
		}
	}
	for i := range prompts {
		prompts[i].Tags = perPrompt[prompts[i].ID]
	}

	return store.Snapshot{
		ExportedAt: store.Now(),
		Folders:    folders,
		Tags:       tags,
		Prompts:    prompts,
		PromptTags: links,
	}, nil
}

func (s *Store) links(ctx context.Context) ([]store.PromptTagLink, error) {
	rows, err := s.query(ctx, `SELECT prompt_id, tag_id FROM prompt_tags ORDER BY prompt_id, tag_id`)
	if err != nil {
		return nil, fmt.Errorf("list prompt tags: %w", err)
	}
	defer rows.Close()

	links := make([]store.PromptTagLink, 0)
	for rows.Next() {
		var l store.PromptTagLink
		if err := rows.Scan(&l.PromptID, &l.TagID); err != nil {
			return nil, fmt.Errorf("scan prompt tag: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Import merges a snapshot into the library. Folders and prompts are always
// created fresh; tags are matched by name. Ids in the snapshot are remapped.
// Top-level folders named like an existing top-level folder are reused, so
// re-importing an export does not duplicate the root folder.
func (s *Store) Import(ctx context.Context, snap store.Snapshot) (store.ImportReport, error) {
	var report store.ImportReport

	existingRoots, err := s.ChildFolders(ctx, 0)
	if err != nil {
		return report, err
	}
	existingTags, err := s.Tags(ctx)
	if err != nil {
		return report, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		folderIDs, err := s.importFolders(ctx, tx, snap.Folders, existingRoots, &report)
		if err != nil {
			return err
		}

		tagIDs := make(map[int64]int64, len(snap.Tags))
		byName := make(map[string]int64, len(existingTags)+len(snap.Tags))
		for _, t := range existingTags {
			byName[t.Name] = t.ID
		}
		ensure := func(t store.Tag) (int64, error) {
			name := strings.TrimSpace(t.Name)
			if id, ok := byName[name]; ok {
				return id, nil
			}
			color := t.Color
			if color == "" {
				color = store.DefaultTagColor
			}
			id, err := s.insert(ctx, tx, `INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)`,
				name, color, nonEmpty(t.CreatedAt, store.Now()))
			if err != nil {
				return 0, fmt.Errorf("import tag %q: %w", name, err)
			}
			byName[name] = id
			report.Tags++
			return id, nil
		}
		for _, t := range snap.Tags {
			if strings.TrimSpace(t.Name) == "" {
				continue
			}
			id, err := ensure(t)
			if err != nil {
				return err
			}
			tagIDs[t.ID] = id
		}

		linked := make(map[int64][]int64)
		for _, l := range snap.PromptTags {
			if id, ok := tagIDs[l.TagID]; ok {
				linked[l.PromptID] = append(linked[l.PromptID], id)
			}
		}

		for _, p := range snap.Prompts {
			if strings.TrimSpace(p.Title) == "" {
				continue
			}
			created := nonEmpty(p.CreatedAt, store.Now())
			updated := nonEmpty(p.UpdatedAt, created)
			newID, err := s.insert(ctx, tx,
				`INSERT INTO prompts (title, content, folder_id, is_favorite, is_template, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				p.Title, p.Content, nullID(folderIDs[p.FolderID]), p.IsFavorite, p.IsTemplate, created, updated,
			)
			if err != nil {
				return fmt.Errorf("import prompt %q: %w", p.Title, err)
			}
			if _, err := s.txExec(ctx, tx,
				`INSERT INTO prompt_versions (prompt_id, content, created_at) VALUES (?, ?, ?)`,
				newID, p.Content, updated,
			); err != nil {
				return fmt.Errorf("import prompt version: %w", err)
			}
			report.Prompts++

			ids := linked[p.ID]
			for _, t := range p.Tags {
				if id, ok := tagIDs[t.ID]; ok && t.ID != 0 {
					ids = append(ids, id)
					continue
				}
				if strings.TrimSpace(t.Name) == "" {
					continue
				}
				id, err := ensure(t)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			for _, tagID := range ids {
				if _, err := s.txExec(ctx, tx,
					`INSERT INTO prompt_tags (prompt_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
					newID, tagID,
				); err != nil {
					return fmt.Errorf("import prompt tag: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return store.ImportReport{}, err
	}

	s.log.Info("snapshot imported",
		zap.Int("folders", report.Folders),
		zap.Int("tags", report.Tags),
		zap.Int("prompts", report.Prompts),
	)
	return report, nil
}

// importFolders creates folders parents-first and returns the old->new id map.
func (s *Store) importFolders(
	ctx context.Context,
	tx *sql.Tx,
	folders []store.Folder,
	existingRoots []store.Folder,
	report *store.ImportReport,
) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(folders))
	known := make(map[int64]bool, len(folders))
	for _, f := range folders {
		known[f.ID] = true
	}

	rootByName := make(map[string]int64, len(existingRoots))
	for _, f := range existingRoots {
		rootByName[strings.ToLower(f.Name)] = f.ID
	}

	pending := append([]store.Folder(nil), folders...)
	for len(pending) > 0 {
		progressed := false
		next := pending[:0]
		for _, f := range pending {
			isRoot := f.ParentID == 0 || !known[f.ParentID]
			if !isRoot {
				if _, ready := ids[f.ParentID]; !ready {
					next = append(next, f)
					continue
				}
			}
			progressed = true

			if isRoot {
				if id, ok := rootByName[strings.ToLower(f.Name)]; ok {
					ids[f.ID] = id
					continue
				}
			}

			created := nonEmpty(f.CreatedAt, store.Now())
			id, err := s.insert(ctx, tx,
				`INSERT INTO folders (name, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
				f.Name, nullID(ids[f.ParentID]), created, nonEmpty(f.UpdatedAt, created),
			)
			if err != nil {
				return nil, fmt.Errorf("import folder %q: %w", f.Name, err)
			}
			ids[f.ID] = id
			report.Folders++
		}
		pending = next
		if !progressed {
			return nil, fmt.Errorf("%w: folder hierarchy contains a cycle", store.ErrInvalid)
		}
	}
	return ids, nil
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
