package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"debate-bot/internal/domain"
)

// SQLiteStore implements domain.ConversationRepository on a single SQLite
// file. The full snapshot lives in a JSON column; id, version and activity
// time are real columns so updates and sweeps stay in SQL.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ domain.ConversationRepository = (*SQLiteStore)(nil)
	_ domain.ConversationLister     = (*SQLiteStore)(nil)
	_ domain.ConversationSweeper    = (*SQLiteStore)(nil)
)

// NewSQLiteStore opens (or creates) the database at dbPath and runs the
// schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open conversation db: %w", err)
	}
	// WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate conversation db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS conversations (
			id          TEXT PRIMARY KEY,
			version     INTEGER NOT NULL,
			personality TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_ms  INTEGER NOT NULL,
			data        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_ms);
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encode returns the JSON snapshot of conv as it will look at version next.
func encode(conv *domain.Conversation, next int64) (domain.ConversationSnapshot, string, error) {
	snap := conv.Snapshot()
	snap.Version = next
	data, err := json.Marshal(snap)
	if err != nil {
		return snap, "", fmt.Errorf("marshal conversation: %w", err)
	}
	return snap, string(data), nil
}

func decode(data string) (*domain.Conversation, error) {
	var snap domain.ConversationSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal conversation: %w", err)
	}
	return domain.RestoreConversation(snap)
}

func (s *SQLiteStore) Save(ctx context.Context, conv *domain.Conversation) error {
	const op = "sqlite.Save"
	next := conv.Version() + 1
	snap, data, err := encode(conv, next)
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, version, personality, created_at, updated_ms, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			personality = excluded.personality,
			updated_ms = excluded.updated_ms,
			data = excluded.data`,
		snap.ID, next, snap.Personality, snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		snap.UpdatedAt.UnixMilli(), data,
	)
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	conv.SetVersion(next)
	return nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	const op = "sqlite.FindByID"
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM conversations WHERE id = ?", id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	conv, err := decode(data)
	if err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	return conv, nil
}

func (s *SQLiteStore) Update(ctx context.Context, conv *domain.Conversation) error {
	const op = "sqlite.Update"
	next := conv.Version() + 1
	snap, data, err := encode(conv, next)
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE conversations SET version = ?, personality = ?, updated_ms = ?, data = ? WHERE id = ? AND version = ?",
		next, snap.Personality, snap.UpdatedAt.UnixMilli(), data, snap.ID, conv.Version(),
	)
	if err != nil {
		return domain.RepositoryError(op, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE id = ?", snap.ID).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.NewDomainError(op, domain.ErrConversationNotFound, snap.ID)
		case err != nil:
			return domain.RepositoryError(op, err)
		default:
			return domain.NewDomainError(op, domain.ErrConflict, snap.ID)
		}
	}
	conv.SetVersion(next)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id.String())
	if err != nil {
		return false, domain.RepositoryError("sqlite.Delete", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversations").Scan(&n); err != nil {
		return 0, domain.RepositoryError("sqlite.Count", err)
	}
	return n, nil
}

func (s *SQLiteStore) HealthCheck(ctx context.Context) bool {
	return s.db.PingContext(ctx) == nil
}

// ListIDs returns every stored id, oldest conversation first.
func (s *SQLiteStore) ListIDs(ctx context.Context) ([]domain.ConversationID, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM conversations ORDER BY created_at")
	if err != nil {
		return nil, domain.RepositoryError("sqlite.ListIDs", err)
	}
	return scanIDs("sqlite.ListIDs", rows)
}

func (s *SQLiteStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) ([]domain.ConversationID, error) {
	rows, err := s.db.QueryContext(ctx,
		"DELETE FROM conversations WHERE updated_ms < ? RETURNING id", cutoff.UnixMilli())
	if err != nil {
		return nil, domain.RepositoryError("sqlite.DeleteIdleSince", err)
	}
	return scanIDs("sqlite.DeleteIdleSince", rows)
}

func scanIDs(op string, rows *sql.Rows) ([]domain.ConversationID, error) {
	defer rows.Close()
	var ids []domain.ConversationID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, domain.RepositoryError(op, err)
		}
		id, err := domain.ParseConversationID(raw)
		if err != nil {
			return nil, domain.RepositoryError(op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.RepositoryError(op, err)
	}
	return ids, nil
}
