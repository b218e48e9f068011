package player

// PlaybackState is the player's position in the playback lifecycle.
//
//	          Prepare            decoded
//	┌──────┐ ─────────▶ ┌───────────┐ ─────────▶ ┌───────┐
//	│ Idle │            │ Buffering │            │ Ready │
//	└──────┘ ◀───────── └───────────┘            └───────┘
//	    ▲       Stop / error                       │   ▲
//	    │                                 end of   │   │ SeekTo
//	    │                                 stream   ▼   │
//	    │               Stop               ┌───────────┐
//	    └──────────────────────────────────│   Ended   │
//	                                       └───────────┘
//
// Whether a Ready player produces sound is decided by the separate
// PlayWhenReady flag, so pausing never changes the state.
type PlaybackState int

const (
	Idle PlaybackState = iota
	Buffering
	Ready
	Ended
)

func (s PlaybackState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Buffering:
		return "Buffering"
	case Ready:
		return "Ready"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// HasMedia reports whether a track is loaded (Ready or Ended).
func (s PlaybackState) HasMedia() bool {
	return s == Ready || s == Ended
}
