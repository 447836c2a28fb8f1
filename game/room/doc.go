// Package room provides the core domain type for the buzzer service.
//
// The room package implements:
//   - Room state: ordered player list, host, scores, active buzzer
//   - First-press-wins buzzer claiming (compare-and-set)
//   - Host promotion when the current host departs
//   - Per-player buzzer locking and score accounting
//   - Short room-code generation
//
// Core Types:
//
// Room is the mutable state shared by every member of one buzzer room.
// Player is one entry of the ordered member list. Snapshot is an immutable
// value copy suitable for serialization.
//
// Invariants:
//
// Every exported mutation leaves the room in a state where the host is a
// current member whenever the member list is non-empty, no two members share
// an ID, and the active buzzer (when claimed) names a current member.
// Mutations return copies of the affected state, never live slices or maps,
// so callers can serialize the result without holding the room lock.
//
// Concurrency:
//
// All exported methods are safe for concurrent use. Each Room carries its
// own mutex, so two transports (WebSocket dispatch loop and REST handlers)
// can act on the same room without observing partial mutations.
//
// Usage:
//
//	r := room.New(room.NewCode(), "u1", "alice")
//	players, added := r.AddPlayer("u2", "bob")
//	outcome := r.Press("u2")
//	if outcome == room.PressWon {
//		// broadcast BUZZER_PRESSED
//	}
package room
