// Package playlist holds the ordered media items of a playback session.
package playlist

import "github.com/jetaudio/jetaudio/internal/audio"

// Queue is an ordered list of tracks with a current position.
// It is not safe for concurrent use; the owning session serializes access.
type Queue struct {
	items        []audio.Audio
	currentIndex int // -1 when nothing is selected
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{currentIndex: -1}
}

// Replace swaps in items and clears the selection.
func (q *Queue) Replace(items []audio.Audio) {
	q.items = append([]audio.Audio(nil), items...)
	q.currentIndex = -1
}

// Reload swaps in items and keeps the current track selected by ID,
// wherever it moved. It reports false, with nothing selected, when the
// current track is not part of items.
func (q *Queue) Reload(items []audio.Audio) bool {
	cur, ok := q.Current()
	q.Replace(items)
	if !ok {
		return false
	}
	q.currentIndex = q.IndexOf(cur.ID)
	return q.currentIndex >= 0
}

// Items returns a copy of the queued tracks.
func (q *Queue) Items() []audio.Audio {
	return append([]audio.Audio(nil), q.items...)
}

// Len returns the number of tracks.
func (q *Queue) Len() int { return len(q.items) }

// IsEmpty reports whether the queue has no tracks.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// CurrentIndex returns the selected index, or -1.
func (q *Queue) CurrentIndex() int { return q.currentIndex }

// Current returns the selected track.
func (q *Queue) Current() (audio.Audio, bool) {
	return q.At(q.currentIndex)
}

// At returns the track at index.
func (q *Queue) At(index int) (audio.Audio, bool) {
	if index < 0 || index >= len(q.items) {
		return audio.Audio{}, false
	}
	return q.items[index], true
}

// JumpTo selects index. It returns false and leaves the selection alone
// when index is out of range.
func (q *Queue) JumpTo(index int) bool {
	if index < 0 || index >= len(q.items) {
		return false
	}
	q.currentIndex = index
	return true
}

// HasNext reports whether a track follows the current one.
func (q *Queue) HasNext() bool {
	return q.currentIndex+1 < len(q.items)
}

// NextIndex returns the index after the current one. With wrap set the
// last track is followed by the first; otherwise -1 is returned at the end.
func (q *Queue) NextIndex(wrap bool) int {
	switch {
	case len(q.items) == 0:
		return -1
	case q.HasNext():
		return q.currentIndex + 1
	case wrap:
		return 0
	default:
		return -1
	}
}

// IndexOf returns the position of the track with id, or -1.
func (q *Queue) IndexOf(id int64) int {
	for i, a := range q.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}
