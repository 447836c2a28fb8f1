package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaxbanCh/qpui.back/game/room"
	"github.com/MaxbanCh/qpui.back/game/store"
)

// buzzerServiceImpl implements the BuzzerService interface.
type buzzerServiceImpl struct {
	rooms      *store.Store
	joinPolicy JoinPolicy
}

// NewBuzzerService creates a buzzer service with the default join policy
// (CreateOnMiss).
func NewBuzzerService(rooms *store.Store) BuzzerService {
	return NewBuzzerServiceWithPolicy(rooms, CreateOnMiss)
}

// NewBuzzerServiceWithPolicy creates a buzzer service with an explicit
// join-miss policy.
func NewBuzzerServiceWithPolicy(rooms *store.Store, policy JoinPolicy) BuzzerService {
	return &buzzerServiceImpl{
		rooms:      rooms,
		joinPolicy: policy,
	}
}

// CreateRoom creates a room with the caller as host and sole member.
func (s *buzzerServiceImpl) CreateRoom(ctx context.Context, userID, username string) (room.Snapshot, error) {
	r, err := s.rooms.Create(userID, username)
	if err != nil {
		return room.Snapshot{}, fmt.Errorf("failed to create room: %w", err)
	}
	return r.Snapshot(), nil
}

// JoinRoom adds the caller to the room with the given code. Joining an
// already-joined room is idempotent. A miss is resolved by the configured
// JoinPolicy.
func (s *buzzerServiceImpl) JoinRoom(ctx context.Context, userID, username, code string) (*JoinResult, error) {
	r, err := s.rooms.Get(code)
	if errors.Is(err, store.ErrRoomNotFound) {
		if s.joinPolicy == RejectOnMiss {
			return nil, err
		}
		snap, err := s.CreateRoom(ctx, userID, username)
		if err != nil {
			return nil, err
		}
		return &JoinResult{Room: snap, Created: true}, nil
	}
	if err != nil {
		return nil, err
	}

	r.AddPlayer(userID, username)
	return &JoinResult{Room: r.Snapshot()}, nil
}

// Leave removes the user from the room: the shared path for explicit
// leaves and socket closures. An emptied room is deleted from the store;
// otherwise a departing host is replaced by the first remaining player in
// join order.
func (s *buzzerServiceImpl) Leave(ctx context.Context, code, userID string) (*LeaveResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}

	players, newHost, empty, removed := r.RemovePlayer(userID)
	if !removed {
		return &LeaveResult{}, nil
	}
	if empty {
		s.rooms.Delete(code)
		return &LeaveResult{Left: true, RoomDeleted: true}, nil
	}
	return &LeaveResult{Left: true, Players: players, NewHost: newHost}, nil
}

// PressBuzzer attempts to claim the buzzer for the given player.
func (s *buzzerServiceImpl) PressBuzzer(ctx context.Context, code, userID string) (room.PressOutcome, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return 0, err
	}
	return r.Press(userID), nil
}

// ResetBuzzer releases the buzzer. Host-only.
func (s *buzzerServiceImpl) ResetBuzzer(ctx context.Context, code, actorID string) error {
	r, err := s.rooms.Get(code)
	if err != nil {
		return err
	}
	if !r.IsHost(actorID) {
		return ErrNotHost
	}
	r.ResetBuzzer()
	return nil
}

// LockPlayerBuzzer sets the target player's locked flag. Host-only.
func (s *buzzerServiceImpl) LockPlayerBuzzer(ctx context.Context, code, actorID, playerID string, lock bool) error {
	r, err := s.rooms.Get(code)
	if err != nil {
		return err
	}
	if !r.IsHost(actorID) {
		return ErrNotHost
	}
	if !r.SetPlayerLock(playerID, lock) {
		return ErrPlayerNotFound
	}
	return nil
}

// AwardPoints adds points (possibly negative) to the target player's
// score. Host-only.
func (s *buzzerServiceImpl) AwardPoints(ctx context.Context, code, actorID, playerID string, points int) (*PointsResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}
	if !r.IsHost(actorID) {
		return nil, ErrNotHost
	}
	scores, players := r.AwardPoints(playerID, points)
	return &PointsResult{Scores: scores, Players: players}, nil
}

// GetRoom returns a snapshot of the room with the given code.
func (s *buzzerServiceImpl) GetRoom(ctx context.Context, code string) (room.Snapshot, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return room.Snapshot{}, err
	}
	return r.Snapshot(), nil
}

// ListRooms returns snapshots of all live rooms ordered by code.
func (s *buzzerServiceImpl) ListRooms(ctx context.Context) []room.Snapshot {
	rooms := s.rooms.List()
	out := make([]room.Snapshot, len(rooms))
	for i, r := range rooms {
		out[i] = r.Snapshot()
	}
	return out
}
