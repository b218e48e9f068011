// Package repository fetches the list of audio tracks from a content source
// off the caller's goroutine.
package repository

import (
	"context"

	"github.com/jetaudio/jetaudio/internal/audio"
)

// Source performs the content query.
type Source interface {
	AudioData(ctx context.Context) ([]audio.Audio, error)
}

// AudioRepository runs content queries in the background.
// It keeps no cache: every call queries the source again.
type AudioRepository struct {
	source Source
}

// New creates a repository over source.
func New(source Source) *AudioRepository {
	return &AudioRepository{source: source}
}

type result struct {
	list []audio.Audio
	err  error
}

// GetAudioData queries the source on a separate goroutine and waits for the
// list. If ctx ends first, ctx.Err() is returned and the query result is
// discarded. Source errors are returned unchanged.
func (r *AudioRepository) GetAudioData(ctx context.Context) ([]audio.Audio, error) {
	done := make(chan result, 1)
	go func() {
		list, err := r.source.AudioData(ctx)
		done <- result{list: list, err: err}
	}()

	select {
	case res := <-done:
		return res.list, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
