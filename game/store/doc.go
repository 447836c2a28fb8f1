// Package store provides thread-safe storage for live buzzer rooms.
//
// The store package implements:
//   - Room lookup by code
//   - Room creation with collision-safe code generation
//   - Room deletion and listing
//
// Room Codes:
//
// Rooms use 6-character uppercase alphanumeric codes so players can read
// them aloud. Creation retries code generation a bounded number of times
// against the live set rather than overwriting an existing room, since an
// overwrite would silently corrupt an unrelated game in progress.
//
// Concurrency:
//
// The store is safe for concurrent use. The store mutex guards only the
// code → room map; mutation of an individual room is guarded by that
// room's own lock (see the room package).
package store
