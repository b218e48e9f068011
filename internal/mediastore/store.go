// Package mediastore indexes local audio files in SQLite and serves them as
// the content source behind the audio repository.
package mediastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/db"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("mediastore: closed")

// Row is one indexed file as stored in audio_media.
type Row struct {
	ID          int64
	Path        string
	DisplayName string
	Title       string
	Artist      string
	Album       string
	DurationMS  int
	Size        int64
	Mtime       int64
	DateAdded   int64
}

// Audio maps the row to the record handed to the rest of the app.
func (r Row) Audio() audio.Audio {
	a := audio.New(r.ID, r.Path, r.Title, r.Artist, r.DurationMS)
	if r.DisplayName != "" {
		a.DisplayName = r.DisplayName
	}
	return a
}

// Store is the SQLite media index.
type Store struct {
	db     *sql.DB
	owned  bool
	log    zerolog.Logger
	mu     sync.RWMutex
	closed bool
	probe  probeFunc
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile("jetaudio/media.db")
}

// Open opens (or creates) the index at path. An empty path selects DefaultPath.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	}
	conn, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media store: %w", err)
	}
	s, err := New(conn, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New wraps an existing connection and creates the schema if needed.
// The caller keeps ownership of conn.
func New(conn *sql.DB, log zerolog.Logger) (*Store, error) {
	if err := initSchema(conn); err != nil {
		return nil, fmt.Errorf("init media store schema: %w", err)
	}
	return &Store{db: conn, log: log.With().Str("component", "mediastore").Logger()}, nil
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS audio_media (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			artist TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT -1,
			size INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL,
			date_added INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audio_media_display_name
			ON audio_media(display_name COLLATE NOCASE);
	`)
	return err
}

// Close closes the store. The connection is closed only if Open created it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// acquire holds the read lock for the duration of an operation.
func (s *Store) acquire() (release func(), err error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrClosed
	}
	return s.mu.RUnlock, nil
}

const selectRows = `
	SELECT id, path, display_name, title, artist, album, duration_ms, size, mtime, date_added
	FROM audio_media`

// Query returns every indexed file ordered by display name
// (case-insensitive), then id.
func (s *Store) Query(ctx context.Context) ([]Row, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := s.db.QueryContext(ctx, selectRows+` ORDER BY display_name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("query audio media: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Path, &r.DisplayName, &r.Title, &r.Artist,
			&r.Album, &r.DurationMS, &r.Size, &r.Mtime, &r.DateAdded); err != nil {
			return nil, fmt.Errorf("scan audio media row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Summary holds aggregate figures for the index.
type Summary struct {
	Tracks     int
	TotalSize  int64
	DurationMS int64 // sum of known durations
}

// Summary returns aggregate figures for the whole index.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	release, err := s.acquire()
	if err != nil {
		return Summary{}, err
	}
	defer release()

	var sum Summary
	var size, dur sql.NullInt64
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(size), SUM(CASE WHEN duration_ms > 0 THEN duration_ms ELSE 0 END)
		FROM audio_media
	`).Scan(&sum.Tracks, &size, &dur)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize audio media: %w", err)
	}
	sum.TotalSize = db.NullInt64Value(size, 0)
	sum.DurationMS = db.NullInt64Value(dur, 0)
	return sum, nil
}
