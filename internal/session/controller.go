package session

import "time"

// ControllerKind identifies what kind of client is controlling the session.
type ControllerKind string

const (
	KindTUI   ControllerKind = "tui"
	KindMPRIS ControllerKind = "mpris"
	KindCLI   ControllerKind = "cli"
)

// ControllerInfo describes a client connected to the session.
type ControllerInfo struct {
	Name        string
	Kind        ControllerKind
	ConnectedAt time.Time
}
