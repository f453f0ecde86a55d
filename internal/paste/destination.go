// Package paste implements the line-by-line paste delivery engine.
// A Scheduler keeps at most one delivery Job per Destination; each Job
// owns a recurring timer and emits one line of its text per tick to the
// live destination handle, so large pastes never flood a channel.
//
// The package is host-agnostic: the chat client behind the pastes is
// reached only through the Directory, Handle and Sink interfaces, and
// timers are scheduled through the Timer interface. Channel connectors
// (internal/channels) supply the live implementations.
package paste

import "fmt"

// Destination identifies where a paste is being delivered. Two
// destinations are the same target iff all four fields are equal, so the
// zero-overhead struct comparison is the equality contract and the type
// can be used directly as a map key.
//
// ConnectionID distinguishes two connections that otherwise share
// network/server/channel (e.g. before and after a reconnect); a paste
// started on an old connection is never picked up by a command issued on
// a new one.
type Destination struct {
	Network      string `json:"network"`
	Server       string `json:"server"`
	Channel      string `json:"channel"`
	ConnectionID string `json:"connection_id"`
}

// String renders the destination for user-visible diagnostics.
func (d Destination) String() string {
	return fmt.Sprintf("%s - %s", d.Channel, d.Network)
}
