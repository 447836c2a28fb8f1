// Package service provides the business logic layer for the buzzer server.
//
// The service package implements:
//   - Room creation and join handling (including the join-miss policy)
//   - First-press-wins buzzer claiming
//   - Host-only actions: buzzer reset, per-player locking, point awards
//   - The single departure path shared by explicit leaves and disconnects
//
// Core Interfaces:
//
// BuzzerService is the main service interface consumed by every transport
// (WebSocket dispatch loop, REST handlers, MCP tools). Methods mutate the
// room store and return committed snapshots; the service never touches
// sockets, so transports decide what to send and to whom after the
// mutation has fully landed.
//
// Authorization:
//
// The only privileged actor is a room's current host, checked by comparing
// the acting user ID against the room's host ID. There is no token or
// signature behind that ID; any client claiming the host's ID can act as
// host. Rejected host-only actions return ErrNotHost, which transports
// translate into a silent no-op.
//
// Join-miss policy:
//
// Joining a code with no live room is governed by a JoinPolicy. The
// default, CreateOnMiss, silently creates a fresh room (with a newly
// generated code) under the joiner as host, matching the original service.
// RejectOnMiss surfaces ErrRoomNotFound instead. The policy is fixed at
// construction so no handler ever branches on it.
//
// Usage:
//
//	svc := service.NewBuzzerService(store.New())
//	snap, err := svc.CreateRoom(ctx, "u1", "alice")
//	res, err := svc.JoinRoom(ctx, "u2", "bob", snap.Code)
package service
