package mediastore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/db"
	"github.com/jetaudio/jetaudio/internal/tags"
)

const numWorkers = 8

// Scan phases reported through ScanProgress.
const (
	PhaseDiscover = "discovering"
	PhaseProbe    = "probing"
	PhaseClean    = "cleaning"
	PhaseDone     = "done"
)

// ScanProgress reports the progress of a scan.
type ScanProgress struct {
	Phase   string
	Current int
	Total   int
	Stats   *ScanStats // set when Phase == PhaseDone
}

// ScanStats summarizes a completed scan.
type ScanStats struct {
	Seen      int
	Added     int
	Updated   int
	Removed   int
	Unchanged int
}

// Changed reports whether the scan modified the index.
func (s ScanStats) Changed() bool {
	return s.Added+s.Updated+s.Removed > 0
}

type fileInfo struct {
	path  string
	size  int64
	mtime int64
}

type probed struct {
	fileInfo
	title      string
	artist     string
	album      string
	durationMS int
}

// probeFunc extracts metadata from one file. Replaced in tests.
type probeFunc func(path string) (title, artist, album string, durationMS int)

func probeFile(path string) (title, artist, album string, durationMS int) {
	t := tags.ReadOrDefault(path)
	return t.Title, t.Artist, t.Album, tags.DurationMillis(path)
}

// Scan indexes the audio files under roots. Unchanged files (same size and
// mtime) are skipped, new or modified ones are probed by a worker pool and
// upserted, and rows whose file disappeared are deleted. All writes happen
// in one transaction. progress may be nil; when set it is closed on return.
func (s *Store) Scan(ctx context.Context, roots []string, progress chan<- ScanProgress) (ScanStats, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p ScanProgress) {
		if progress == nil {
			return
		}
		select {
		case progress <- p:
		case <-ctx.Done():
		}
	}

	release, err := s.acquire()
	if err != nil {
		return ScanStats{}, err
	}
	defer release()

	report(ScanProgress{Phase: PhaseDiscover})
	files, scanned, err := discoverFiles(ctx, roots, s.log)
	if err != nil {
		return ScanStats{}, err
	}

	existing, err := s.existingFiles(ctx)
	if err != nil {
		return ScanStats{}, err
	}

	stats := ScanStats{Seen: len(files)}
	var toProbe []fileInfo
	for _, f := range files {
		if old, ok := existing[f.path]; ok && old.size == f.size && old.mtime == f.mtime {
			stats.Unchanged++
			continue
		}
		toProbe = append(toProbe, f)
	}

	results := s.probeAll(ctx, toProbe, report)
	if err := ctx.Err(); err != nil {
		return ScanStats{}, err
	}

	report(ScanProgress{Phase: PhaseClean})
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		for _, r := range results {
			if err := upsert(ctx, tx, r, now); err != nil {
				return err
			}
			if _, ok := existing[r.path]; ok {
				stats.Updated++
			} else {
				stats.Added++
			}
		}
		seen := make(map[string]struct{}, len(files))
		for _, f := range files {
			seen[f.path] = struct{}{}
		}
		for path := range existing {
			if _, ok := seen[path]; ok || !underAny(path, scanned) {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM audio_media WHERE path = ?`, path); err != nil {
				return fmt.Errorf("delete %s: %w", path, err)
			}
			stats.Removed++
		}
		return nil
	})
	if err != nil {
		return ScanStats{}, fmt.Errorf("write scan results: %w", err)
	}

	s.log.Debug().
		Int("seen", stats.Seen).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("removed", stats.Removed).
		Msg("scan finished")
	report(ScanProgress{Phase: PhaseDone, Current: stats.Seen, Total: stats.Seen, Stats: &stats})
	return stats, nil
}

// discoverFiles walks roots and returns every music file found, plus the
// roots that could be walked. A root that cannot be opened is logged and
// left out, so rows under it survive the scan. Unreadable entries below a
// root are skipped so one bad directory does not abort the scan.
func discoverFiles(ctx context.Context, roots []string, log zerolog.Logger) ([]fileInfo, []string, error) {
	var files []fileInfo
	var scanned []string
	visited := make(map[string]struct{})
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			log.Warn().Err(err).Str("root", root).Msg("skipping music directory")
			continue
		}
		var found []fileInfo
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				if path == abs {
					return walkErr
				}
				return nil
			}
			if d.IsDir() || !tags.IsMusicFile(path) {
				return nil
			}
			if _, dup := visited[path]; dup {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // skip files we cannot stat
			}
			visited[path] = struct{}{}
			found = append(found, fileInfo{path: path, size: info.Size(), mtime: info.ModTime().Unix()})
			return nil
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		if err != nil {
			log.Warn().Err(err).Str("root", abs).Msg("music directory unavailable, keeping its index")
			continue
		}
		files = append(files, found...)
		scanned = append(scanned, abs)
	}
	return files, scanned, nil
}

// underAny reports whether path lies inside one of roots.
func underAny(path string, roots []string) bool {
	for _, root := range roots {
		prefix := root
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if path == root || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (s *Store) existingFiles(ctx context.Context) (map[string]fileInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, size, mtime FROM audio_media`)
	if err != nil {
		return nil, fmt.Errorf("list indexed files: %w", err)
	}
	defer rows.Close()

	files := make(map[string]fileInfo)
	for rows.Next() {
		var f fileInfo
		if err := rows.Scan(&f.path, &f.size, &f.mtime); err != nil {
			return nil, err
		}
		files[f.path] = f
	}
	return files, rows.Err()
}

// probeAll reads metadata for files in parallel. Results keep input order.
func (s *Store) probeAll(ctx context.Context, files []fileInfo, report func(ScanProgress)) []probed {
	total := len(files)
	if total == 0 {
		return nil
	}
	probe := s.probe
	if probe == nil {
		probe = probeFile
	}

	results := make([]probed, total)
	var done atomic.Int64
	work := make(chan int)

	var wg sync.WaitGroup
	for range min(numWorkers, total) {
		wg.Go(func() {
			for i := range work {
				f := files[i]
				title, artist, album, dur := probe(f.path)
				results[i] = probed{fileInfo: f, title: title, artist: artist, album: album, durationMS: dur}
				n := done.Add(1)
				if n%25 == 0 {
					report(ScanProgress{Phase: PhaseProbe, Current: int(n), Total: total})
				}
			}
		})
	}

feed:
	for i := range files {
		select {
		case work <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	report(ScanProgress{Phase: PhaseProbe, Current: int(done.Load()), Total: total})
	return results[:done.Load()]
}

func upsert(ctx context.Context, tx *sql.Tx, r probed, now int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audio_media (path, display_name, title, artist, album, duration_ms, size, mtime, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			display_name = excluded.display_name,
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			duration_ms = excluded.duration_ms,
			size = excluded.size,
			mtime = excluded.mtime
	`, r.path, filepath.Base(r.path), r.title, r.artist, r.album, r.durationMS, r.size, r.mtime, now)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", r.path, err)
	}
	return nil
}
