// Package home renders the home screen: the track list and the bottom
// player bar. It holds no playback state; everything comes in through
// Props and every interaction leaves through Callbacks.
package home

import "github.com/jetaudio/jetaudio/internal/audio"

// Props is the state the screen renders.
type Props struct {
	Progress            float64 // 0..100
	IsAudioPlaying      bool
	CurrentPlayingAudio audio.Audio
	AudioList           []audio.Audio
}

// Callbacks receive user interactions. Nil callbacks are ignored.
type Callbacks struct {
	OnProgress  func(float64)
	OnItemClick func(int)
	OnStart     func()
	OnNext      func()
}

func (c Callbacks) progress(v float64) {
	if c.OnProgress != nil {
		c.OnProgress(clampProgress(v))
	}
}

func (c Callbacks) itemClick(i int) {
	if c.OnItemClick != nil {
		c.OnItemClick(i)
	}
}

func (c Callbacks) start() {
	if c.OnStart != nil {
		c.OnStart()
	}
}

func (c Callbacks) next() {
	if c.OnNext != nil {
		c.OnNext()
	}
}

func clampProgress(v float64) float64 {
	return min(max(v, 0), 100)
}
