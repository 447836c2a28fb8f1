package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/MaxbanCh/qpui.back/game/room"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrCodeExhausted = errors.New("could not generate an unused room code")
)

// maxCodeAttempts bounds the retry-with-regeneration loop in Create.
const maxCodeAttempts = 10

// Store owns all live rooms, keyed by room code.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room

	// newCode is swappable for collision tests.
	newCode func() string
}

// New creates an empty room store.
func New() *Store {
	return &Store{
		rooms:   make(map[string]*room.Room),
		newCode: room.NewCode,
	}
}

// Create generates a fresh code, creates a room with the given player as
// host and sole member, and registers it. Generation retries on collision
// up to maxCodeAttempts times before failing; it never overwrites a live
// room.
func (s *Store) Create(hostID, hostName string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxCodeAttempts; i++ {
		code := s.newCode()
		if _, exists := s.rooms[code]; exists {
			continue
		}
		r := room.New(code, hostID, hostName)
		s.rooms[code] = r
		return r, nil
	}
	return nil, ErrCodeExhausted
}

// Get retrieves a room by code.
func (s *Store) Get(code string) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Delete removes a room by code. Deleting an absent code is a no-op.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// List returns all live rooms ordered by code.
func (s *Store) List() []*room.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*room.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Len returns the number of live rooms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
