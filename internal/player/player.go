// Package player plays one audio file at a time through the beep speaker.
package player

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker initializes the speaker once, at the rate of the first track.
// Later tracks are resampled to that rate.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerRate != 0 {
		return speakerRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("init speaker: %w", err)
	}
	speakerRate = rate
	return rate, nil
}

// Player is the beep-backed Interface implementation.
type Player struct {
	log zerolog.Logger

	mu            sync.Mutex
	state         PlaybackState
	playWhenReady bool
	released      bool
	generation    int // bumped on every load/stop; stale end callbacks compare it

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64

	ended chan struct{}
}

// New creates an idle player.
func New(log zerolog.Logger) *Player {
	return &Player{
		log:   log.With().Str("component", "player").Logger(),
		level: 1,
		ended: make(chan struct{}, 1),
	}
}

// Prepare decodes path and moves to Ready. Output starts immediately when
// PlayWhenReady is set.
func (p *Player) Prepare(path string) error {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return ErrReleased
	}
	p.unloadLocked()
	p.state = Buffering
	gen := p.generation
	p.mu.Unlock()

	streamer, format, err := openDecoder(path)
	if err == nil {
		_, err = initSpeaker(format.SampleRate)
		if err != nil {
			streamer.Close()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commitLocked(gen, path, streamer, format, err)
}

// commitLocked installs a decoded track unless the load generation moved
// on while decoding.
func (p *Player) commitLocked(gen int, path string, streamer beep.StreamSeekCloser, format beep.Format, err error) error {
	if gen != p.generation || p.released {
		if err == nil {
			streamer.Close()
		}
		if p.released {
			return ErrReleased
		}
		return ErrSuperseded
	}
	if err != nil {
		p.state = Idle
		return fmt.Errorf("prepare %s: %w", path, err)
	}

	p.streamer = streamer
	p.format = format
	p.state = Ready
	p.startOutputLocked()
	p.log.Debug().Str("path", path).Dur("duration", p.durationLocked()).Msg("prepared")
	return nil
}

// startOutputLocked hands the current streamer to the speaker.
func (p *Player) startOutputLocked() {
	var s beep.Streamer = p.streamer
	if p.format.SampleRate != speakerRate {
		s = beep.Resample(4, p.format.SampleRate, speakerRate, s)
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: !p.playWhenReady}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.level)}

	gen := p.generation
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go p.handleEnd(gen)
	})))
}

func (p *Player) handleEnd(gen int) {
	p.mu.Lock()
	if gen != p.generation || p.state != Ready {
		p.mu.Unlock()
		return
	}
	p.state = Ended
	p.mu.Unlock()

	select {
	case p.ended <- struct{}{}:
	default:
	}
}

// SetPlayWhenReady sets whether a Ready player should produce sound.
func (p *Player) SetPlayWhenReady(play bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playWhenReady = play
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = !play
		speaker.Unlock()
	}
}

func (p *Player) PlayWhenReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playWhenReady
}

func (p *Player) Play()  { p.SetPlayWhenReady(true) }
func (p *Player) Pause() { p.SetPlayWhenReady(false) }

// SeekTo moves to pos, clamped to the track. Seeking an Ended track makes
// it Ready again.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return
	}
	n := min(max(p.format.SampleRate.N(pos), 0), p.streamer.Len())

	if p.state == Ended {
		if err := p.streamer.Seek(n); err != nil {
			p.log.Warn().Err(err).Msg("seek failed")
			return
		}
		p.generation++
		p.state = Ready
		p.startOutputLocked()
		return
	}

	speaker.Lock()
	err := p.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		p.log.Warn().Err(err).Msg("seek failed")
	}
}

// Stop unloads the track. PlayWhenReady is left unchanged.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unloadLocked()
}

func (p *Player) unloadLocked() {
	p.generation++
	if p.streamer != nil {
		speaker.Clear()
		if err := p.streamer.Close(); err != nil {
			p.log.Debug().Err(err).Msg("close streamer")
		}
	}
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.state = Idle
}

func (p *Player) PlaybackState() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Ready && p.playWhenReady
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	n := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(n)
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.durationLocked()
}

func (p *Player) durationLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Ended() <-chan struct{} {
	return p.ended
}

// Release stops playback for good. Later Prepare calls fail with ErrReleased.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unloadLocked()
	p.released = true
}

// SetVolume sets the output level, 0 (silent) to 1 (unchanged).
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = min(max(level, 0), 1)
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(p.level)
		p.volume.Silent = p.level == 0
		speaker.Unlock()
	}
}

// levelToVolume maps a linear level to beep's base-2 volume exponent:
// 1 → 0, 0.5 → -1, 0.25 → -2.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
