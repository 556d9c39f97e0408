package vault

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a named bucket of saved contexts. ContextCount and TotalSize
// are aggregates computed by Projects.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
	ContextCount int    `json:"contextCount"`
	TotalSize    int64  `json:"totalSize"`
}

// Context is one compressed conversation saved under a project.
type Context struct {
	ID         string `json:"id"`
	ProjectID  string `json:"projectId"`
	Compressed string `json:"compressed"`
	Size       int    `json:"size"`
	CreatedAt  int64  `json:"createdAt"`
}

// SaveContext appends the compressed text to the named project, creating the
// project if it does not exist. Project names match case-insensitively.
func (db *DB) SaveContext(name, compressed string) (*Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is empty")
	}
	if compressed == "" {
		return nil, fmt.Errorf("nothing to save")
	}

	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var projectID string
	err = tx.QueryRow("SELECT id FROM projects WHERE name = ?", name).Scan(&projectID)
	if err == sql.ErrNoRows {
		projectID = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO projects (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, projectID, name, now, now)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	} else {
		if _, err := tx.Exec("UPDATE projects SET updated_at = ? WHERE id = ?", now, projectID); err != nil {
			return nil, fmt.Errorf("touch project: %w", err)
		}
	}

	c := &Context{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Compressed: compressed,
		Size:       len(compressed),
		CreatedAt:  now,
	}
	_, err = tx.Exec(`
		INSERT INTO contexts (id, project_id, compressed, size, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.ProjectID, c.Compressed, c.Size, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert context: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return c, nil
}

// Projects returns all projects ordered by most recently updated, with
// per-project context counts and combined sizes.
func (db *DB) Projects() ([]Project, error) {
	rows, err := db.Query(`
		SELECT p.id, p.name, p.created_at, p.updated_at,
		       COUNT(c.id), COALESCE(SUM(c.size), 0)
		FROM projects p
		LEFT JOIN contexts c ON c.project_id = p.id
		GROUP BY p.id
		ORDER BY p.updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt, &p.ContextCount, &p.TotalSize); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FindProject looks a project up by name, matching case-insensitively.
// Returns nil when no project has that name.
func (db *DB) FindProject(name string) (*Project, error) {
	var p Project
	err := db.QueryRow(`
		SELECT p.id, p.name, p.created_at, p.updated_at,
		       COUNT(c.id), COALESCE(SUM(c.size), 0)
		FROM projects p
		LEFT JOIN contexts c ON c.project_id = p.id
		WHERE p.name = ?
		GROUP BY p.id
	`, strings.TrimSpace(name)).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt, &p.ContextCount, &p.TotalSize)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

// LatestContext returns the most recently saved context for a project,
// or nil when the project has none.
func (db *DB) LatestContext(projectID string) (*Context, error) {
	var c Context
	err := db.QueryRow(`
		SELECT id, project_id, compressed, size, created_at
		FROM contexts WHERE project_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`, projectID).Scan(&c.ID, &c.ProjectID, &c.Compressed, &c.Size, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest context: %w", err)
	}
	return &c, nil
}

// Contexts returns all contexts for a project, oldest first.
func (db *DB) Contexts(projectID string) ([]Context, error) {
	rows, err := db.Query(`
		SELECT id, project_id, compressed, size, created_at
		FROM contexts WHERE project_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer rows.Close()

	var contexts []Context
	for rows.Next() {
		var c Context
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Compressed, &c.Size, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context: %w", err)
		}
		contexts = append(contexts, c)
	}
	return contexts, rows.Err()
}

// DeleteProject removes a project and, via cascade, all its contexts.
func (db *DB) DeleteProject(projectID string) error {
	result, err := db.Exec("DELETE FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no project with id %s", projectID)
	}
	return nil
}

// CombineContexts joins a project's contexts into one document with a
// session header per context and a divider line between sessions.
func CombineContexts(contexts []Context) string {
	sections := make([]string, 0, len(contexts))
	for i, c := range contexts {
		date := time.UnixMilli(c.CreatedAt).Format("2006-01-02")
		sections = append(sections, fmt.Sprintf("=== Session %d (%s) ===\n\n%s", i+1, date, c.Compressed))
	}
	return strings.Join(sections, "\n\n"+strings.Repeat("=", 50)+"\n\n")
}
