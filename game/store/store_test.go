package store

import (
	"errors"
	"sync"
	"testing"
)

func TestCreate(t *testing.T) {
	s := New()

	r, err := s.Create("p1", "alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.Code() == "" {
		t.Error("Expected a non-empty room code")
	}
	if r.Host() != "p1" {
		t.Errorf("Expected host p1, got %s", r.Host())
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 live room, got %d", s.Len())
	}

	got, err := s.Get(r.Code())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != r {
		t.Error("Get returned a different room instance")
	}
}

func TestCreate_RetriesOnCollision(t *testing.T) {
	s := New()

	// First two generations collide with a live room, third is fresh.
	codes := []string{"SAME01", "SAME01", "SAME01", "FRESH1"}
	i := 0
	s.newCode = func() string {
		code := codes[i%len(codes)]
		i++
		return code
	}

	first, err := s.Create("p1", "alice")
	if err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if first.Code() != "SAME01" {
		t.Fatalf("Expected SAME01, got %s", first.Code())
	}

	second, err := s.Create("p2", "bob")
	if err != nil {
		t.Fatalf("Second create failed: %v", err)
	}
	if second.Code() != "FRESH1" {
		t.Errorf("Expected regeneration to FRESH1, got %s", second.Code())
	}

	// The colliding room must be untouched.
	if first.Host() != "p1" {
		t.Errorf("Collision overwrote existing room: host is %s", first.Host())
	}
}

func TestCreate_ExhaustsAttempts(t *testing.T) {
	s := New()
	s.newCode = func() string { return "ONLY01" }

	if _, err := s.Create("p1", "alice"); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	_, err := s.Create("p2", "bob")
	if !errors.Is(err, ErrCodeExhausted) {
		t.Errorf("Expected ErrCodeExhausted, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Failed create changed the store: %d rooms", s.Len())
	}
}

func TestGet_NotFound(t *testing.T) {
	s := New()

	_, err := s.Get("NOPE00")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	r, _ := s.Create("p1", "alice")

	s.Delete(r.Code())
	if _, err := s.Get(r.Code()); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected deleted room to be gone, got %v", err)
	}

	// Deleting again is a no-op.
	s.Delete(r.Code())
}

func TestList_Ordered(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		if _, err := s.Create("p1", "alice"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	rooms := s.List()
	if len(rooms) != 5 {
		t.Fatalf("Expected 5 rooms, got %d", len(rooms))
	}
	for i := 1; i < len(rooms); i++ {
		if rooms[i-1].Code() >= rooms[i].Code() {
			t.Errorf("List not ordered by code: %s before %s", rooms[i-1].Code(), rooms[i].Code())
		}
	}
}

func TestConcurrentCreateAndGet(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Create("p1", "alice")
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			if _, err := s.Get(r.Code()); err != nil {
				t.Errorf("Get after Create failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if s.Len() != 20 {
		t.Errorf("Expected 20 rooms, got %d", s.Len())
	}
}
