package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"rustbot/internal/domain"
)

type ShowcaseStore struct {
	db *sql.DB
}

func NewShowcaseStore(dbPath string) (*ShowcaseStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: empty db path")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &ShowcaseStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS showcase_links (
	source_id TEXT PRIMARY KEY,
	channel_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_showcase_links_message_id ON showcase_links(message_id);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate showcase_links: %w", err)
	}
	return nil
}

func (s *ShowcaseStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *ShowcaseStore) Link(ctx context.Context, sourceID string, derived domain.MessageRef) error {
	const q = `
INSERT INTO showcase_links (source_id, channel_id, message_id, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET channel_id = excluded.channel_id, message_id = excluded.message_id`

	if _, err := s.db.ExecContext(ctx, q, sourceID, derived.ChannelID, derived.MessageID, time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite: link showcase %s: %w", sourceID, err)
	}
	return nil
}

func (s *ShowcaseStore) FindDerived(ctx context.Context, sourceID string) (domain.MessageRef, bool, error) {
	const q = `SELECT channel_id, message_id FROM showcase_links WHERE source_id = ?`

	var ref domain.MessageRef
	err := s.db.QueryRowContext(ctx, q, sourceID).Scan(&ref.ChannelID, &ref.MessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MessageRef{}, false, nil
	}
	if err != nil {
		return domain.MessageRef{}, false, fmt.Errorf("sqlite: find showcase for %s: %w", sourceID, err)
	}
	return ref, true, nil
}

func (s *ShowcaseStore) UnlinkDerived(ctx context.Context, derivedID string) error {
	const q = `DELETE FROM showcase_links WHERE message_id = ?`

	if _, err := s.db.ExecContext(ctx, q, derivedID); err != nil {
		return fmt.Errorf("sqlite: unlink showcase %s: %w", derivedID, err)
	}
	return nil
}
