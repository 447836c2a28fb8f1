package service

import (
	"context"
	"errors"

	"github.com/MaxbanCh/qpui.back/game/room"
)

var (
	// ErrNotHost is returned when a host-only action is attempted by a
	// non-host user. Transports treat it as a silent no-op.
	ErrNotHost = errors.New("action restricted to the room host")

	// ErrPlayerNotFound is returned when a host-only action targets a
	// player that is not in the room.
	ErrPlayerNotFound = errors.New("player not found in room")
)

// JoinPolicy decides what happens when a join names a code with no live
// room.
type JoinPolicy int

const (
	// CreateOnMiss silently creates a fresh room (new code, joiner as
	// host) when the requested code does not exist. This preserves the
	// original service's behavior.
	CreateOnMiss JoinPolicy = iota

	// RejectOnMiss surfaces store.ErrRoomNotFound instead of creating.
	RejectOnMiss
)

// JoinResult is the outcome of a JoinRoom call.
type JoinResult struct {
	// Room is the committed room state after the join.
	Room room.Snapshot
	// Created reports that the join fell back to room creation; the
	// caller gets ROOM_CREATED and there is nobody else to notify.
	Created bool
}

// PointsResult is the outcome of an AwardPoints call, carrying the data
// for a POINTS_UPDATED broadcast.
type PointsResult struct {
	Scores  map[string]int      `json:"scores"`
	Players []room.ScoredPlayer `json:"players"`
}

// LeaveResult is the outcome of a Leave call.
type LeaveResult struct {
	// Left reports whether the user was actually a member.
	Left bool
	// RoomDeleted reports that the departure emptied the room; there are
	// no survivors to notify.
	RoomDeleted bool
	// Players and NewHost describe the surviving room for the
	// PLAYER_LEFT broadcast. Unset when RoomDeleted.
	Players []room.Player
	NewHost string
}

// BuzzerService defines all room and buzzer operations.
type BuzzerService interface {
	// Room membership
	CreateRoom(ctx context.Context, userID, username string) (room.Snapshot, error)
	JoinRoom(ctx context.Context, userID, username, code string) (*JoinResult, error)
	Leave(ctx context.Context, code, userID string) (*LeaveResult, error)

	// Buzzer round
	PressBuzzer(ctx context.Context, code, userID string) (room.PressOutcome, error)
	ResetBuzzer(ctx context.Context, code, actorID string) error

	// Host controls
	LockPlayerBuzzer(ctx context.Context, code, actorID, playerID string, lock bool) error
	AwardPoints(ctx context.Context, code, actorID, playerID string, points int) (*PointsResult, error)

	// Read side, used by the REST and MCP surfaces
	GetRoom(ctx context.Context, code string) (room.Snapshot, error)
	ListRooms(ctx context.Context) []room.Snapshot
}
