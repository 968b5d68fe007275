package marketplace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store on a local SQLite database, for catalogs
// that must survive process restarts without a Redis deployment.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at dbPath
// and initializes the marketplace tables.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tools (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_tools (
			key TEXT PRIMARY KEY,
			ids TEXT NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute SQL: %s, error: %w", query, err)
		}
	}
	return nil
}

// GetTool returns the entry for id, or ErrToolNotFound.
func (s *SQLiteStore) GetTool(ctx context.Context, id string) (*Tool, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM tools WHERE id = ?", id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to query tool %s: %w", id, err)
	}

	var t Tool
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool %s: %w", id, err)
	}
	return &t, nil
}

// PutTool stores the entry keyed by its definition id, overwriting any
// prior row.
func (s *SQLiteStore) PutTool(ctx context.Context, t *Tool) error {
	if t == nil || t.Definition.ID == "" {
		return ErrInvalidID
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tool: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tools (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		t.Definition.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to store tool %s: %w", t.Definition.ID, err)
	}
	return nil
}

// ListTools returns all stored entries.
func (s *SQLiteStore) ListTools(ctx context.Context) ([]*Tool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM tools")
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	var tools []*Tool
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan tool row: %w", err)
		}
		var t Tool
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tool: %w", err)
		}
		tools = append(tools, &t)
	}
	return tools, rows.Err()
}

// GetUserTools returns the tool-id list stored under key.
func (s *SQLiteStore) GetUserTools(ctx context.Context, key string) ([]string, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT ids FROM user_tools WHERE key = ?", key).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user list %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user list %s: %w", key, err)
	}
	return ids, nil
}

// PutUserTools replaces the tool-id list stored under key.
func (s *SQLiteStore) PutUserTools(ctx context.Context, key string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal user list: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_tools (key, ids) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET ids = excluded.ids`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to store user list %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
