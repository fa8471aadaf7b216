package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tdsession "github.com/gotd/td/session"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/santaclaude2025/tgstats/pkg/config"
)

const (
	// compressionThreshold is the minimum payload size to compress.
	// Below this, compression overhead isn't worth it.
	compressionThreshold = 1024

	encodingRaw  = "raw"
	encodingZstd = "zstd"
)

// Store is a single-account session file backed by SQLite.
// It implements the gotd session.Storage interface.
type Store struct {
	conn    *sql.DB
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ tdsession.Storage = (*Store)(nil)

// Open opens or creates the session file at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	// A session file is only ever used by one client at a time
	conn.SetMaxOpenConns(1)

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	s := &Store{
		conn:    conn,
		path:    path,
		encoder: encoder,
		decoder: decoder,
	}

	if err := s.initSchema(); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the session file
func (s *Store) Close() error {
	s.decoder.Close()
	s.encoder.Close()
	return s.conn.Close()
}

// Path returns the session file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL,
		encoding TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// LoadSession returns the stored session blob or tdsession.ErrNotFound
func (s *Store) LoadSession(ctx context.Context) ([]byte, error) {
	var data []byte
	var encoding string

	err := s.conn.QueryRowContext(ctx, "SELECT data, encoding FROM session WHERE id = 1").Scan(&data, &encoding)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tdsession.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	switch encoding {
	case encodingRaw:
		return data, nil
	case encodingZstd:
		decoded, err := s.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress session: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unknown session encoding %q", encoding)
	}
}

// StoreSession replaces the stored session blob
func (s *Store) StoreSession(ctx context.Context, data []byte) error {
	payload := data
	encoding := encodingRaw
	if len(data) >= compressionThreshold {
		payload = s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
		encoding = encodingZstd
	}

	query := `
		INSERT INTO session (id, data, encoding, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			encoding = excluded.encoding,
			updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, payload, encoding, time.Now()); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Remove deletes a session file along with any SQLite side files.
// A missing file is not an error.
func Remove(path string) error {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Exists reports whether a session file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// List returns the account IDs of the session files in dir, sorted
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != config.SessionFileExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), config.SessionFileExt))
	}

	sort.Strings(ids)
	return ids, nil
}
