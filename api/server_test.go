package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaxbanCh/qpui.back/game/room"
	"github.com/MaxbanCh/qpui.back/game/service"
	"github.com/MaxbanCh/qpui.back/game/store"
	"github.com/MaxbanCh/qpui.back/transport/websocket"
)

// MockBuzzerService implements service.BuzzerService for testing.
type MockBuzzerService struct {
	CreateRoomFunc   func(ctx context.Context, userID, username string) (room.Snapshot, error)
	JoinRoomFunc     func(ctx context.Context, userID, username, code string) (*service.JoinResult, error)
	LeaveFunc        func(ctx context.Context, code, userID string) (*service.LeaveResult, error)
	PressBuzzerFunc  func(ctx context.Context, code, userID string) (room.PressOutcome, error)
	ResetBuzzerFunc  func(ctx context.Context, code, actorID string) error
	LockPlayerFunc   func(ctx context.Context, code, actorID, playerID string, lock bool) error
	AwardPointsFunc  func(ctx context.Context, code, actorID, playerID string, points int) (*service.PointsResult, error)
	GetRoomFunc      func(ctx context.Context, code string) (room.Snapshot, error)
	ListRoomsFunc    func(ctx context.Context) []room.Snapshot
}

func (m *MockBuzzerService) CreateRoom(ctx context.Context, userID, username string) (room.Snapshot, error) {
	if m.CreateRoomFunc != nil {
		return m.CreateRoomFunc(ctx, userID, username)
	}
	return room.Snapshot{Code: "TEST00", Host: userID}, nil
}

func (m *MockBuzzerService) JoinRoom(ctx context.Context, userID, username, code string) (*service.JoinResult, error) {
	if m.JoinRoomFunc != nil {
		return m.JoinRoomFunc(ctx, userID, username, code)
	}
	return &service.JoinResult{Room: room.Snapshot{Code: code}}, nil
}

func (m *MockBuzzerService) Leave(ctx context.Context, code, userID string) (*service.LeaveResult, error) {
	if m.LeaveFunc != nil {
		return m.LeaveFunc(ctx, code, userID)
	}
	return &service.LeaveResult{}, nil
}

func (m *MockBuzzerService) PressBuzzer(ctx context.Context, code, userID string) (room.PressOutcome, error) {
	if m.PressBuzzerFunc != nil {
		return m.PressBuzzerFunc(ctx, code, userID)
	}
	return room.PressWon, nil
}

func (m *MockBuzzerService) ResetBuzzer(ctx context.Context, code, actorID string) error {
	if m.ResetBuzzerFunc != nil {
		return m.ResetBuzzerFunc(ctx, code, actorID)
	}
	return nil
}

func (m *MockBuzzerService) LockPlayerBuzzer(ctx context.Context, code, actorID, playerID string, lock bool) error {
	if m.LockPlayerFunc != nil {
		return m.LockPlayerFunc(ctx, code, actorID, playerID, lock)
	}
	return nil
}

func (m *MockBuzzerService) AwardPoints(ctx context.Context, code, actorID, playerID string, points int) (*service.PointsResult, error) {
	if m.AwardPointsFunc != nil {
		return m.AwardPointsFunc(ctx, code, actorID, playerID, points)
	}
	return &service.PointsResult{}, nil
}

func (m *MockBuzzerService) GetRoom(ctx context.Context, code string) (room.Snapshot, error) {
	if m.GetRoomFunc != nil {
		return m.GetRoomFunc(ctx, code)
	}
	return room.Snapshot{Code: code}, nil
}

func (m *MockBuzzerService) ListRooms(ctx context.Context) []room.Snapshot {
	if m.ListRoomsFunc != nil {
		return m.ListRoomsFunc(ctx)
	}
	return nil
}

// newTestServer wires a server around the given mock with a running hub.
func newTestServer(svc service.BuzzerService) *Server {
	hub := websocket.NewHub(websocket.NewDispatcher(svc))
	go hub.Run()
	return NewServer(svc, hub, nil)
}

func TestHandleListRooms(t *testing.T) {
	svc := &MockBuzzerService{
		ListRoomsFunc: func(ctx context.Context) []room.Snapshot {
			return []room.Snapshot{
				{Code: "AAAA00", Host: "p1"},
				{Code: "BBBB00", Host: "p2"},
			}
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest("GET", "/api/rooms", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Count int             `json:"count"`
		Rooms []room.Snapshot `json:"rooms"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if resp.Count != 2 || len(resp.Rooms) != 2 {
		t.Errorf("Expected 2 rooms, got %+v", resp)
	}
}

func TestHandleGetRoom(t *testing.T) {
	svc := &MockBuzzerService{
		GetRoomFunc: func(ctx context.Context, code string) (room.Snapshot, error) {
			if code != "AB12CD" {
				return room.Snapshot{}, store.ErrRoomNotFound
			}
			return room.Snapshot{
				Code:    "AB12CD",
				Host:    "p1",
				Players: []room.Player{{ID: "p1", Username: "alice"}},
			}, nil
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest("GET", "/api/rooms/AB12CD", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var snap room.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.Code != "AB12CD" || snap.Host != "p1" {
		t.Errorf("Unexpected room payload: %+v", snap)
	}
}

func TestHandleGetRoom_NotFound(t *testing.T) {
	svc := &MockBuzzerService{
		GetRoomFunc: func(ctx context.Context, code string) (room.Snapshot, error) {
			return room.Snapshot{}, store.ErrRoomNotFound
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest("GET", "/api/rooms/NOPE00", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] == "" {
		t.Error("Expected a JSON error body")
	}
}

func TestHandleResetBuzzer_ActsAsHost(t *testing.T) {
	var resetActor string
	svc := &MockBuzzerService{
		GetRoomFunc: func(ctx context.Context, code string) (room.Snapshot, error) {
			return room.Snapshot{Code: code, Host: "p1", ActiveBuzzer: "p2"}, nil
		},
		ResetBuzzerFunc: func(ctx context.Context, code, actorID string) error {
			resetActor = actorID
			return nil
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest("POST", "/api/rooms/AB12CD/buzzer/reset", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if resetActor != "p1" {
		t.Errorf("Expected reset to act as host p1, got %q", resetActor)
	}
}

func TestHandleResetBuzzer_NotFound(t *testing.T) {
	svc := &MockBuzzerService{
		GetRoomFunc: func(ctx context.Context, code string) (room.Snapshot, error) {
			return room.Snapshot{}, store.ErrRoomNotFound
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest("POST", "/api/rooms/NOPE00/buzzer/reset", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&MockBuzzerService{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", resp["status"])
	}
}

func TestHandleGetCookies(t *testing.T) {
	server := newTestServer(&MockBuzzerService{})

	req := httptest.NewRequest("GET", "/get_cookies", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "Miam les cookies !" {
		t.Errorf("Unexpected body: %q", w.Body.String())
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	svc := &MockBuzzerService{}
	hub := websocket.NewHub(websocket.NewDispatcher(svc))
	go hub.Run()
	server := NewServer(svc, hub, []string{"http://localhost:5173"})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Expected credentials allowed, got %q", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	svc := &MockBuzzerService{}
	hub := websocket.NewHub(websocket.NewDispatcher(svc))
	go hub.Run()
	server := NewServer(svc, hub, []string{"http://localhost:5173"})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS headers for disallowed origin, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	svc := &MockBuzzerService{}
	hub := websocket.NewHub(websocket.NewDispatcher(svc))
	go hub.Run()
	server := NewServer(svc, hub, []string{"http://localhost:5173"})

	req := httptest.NewRequest("OPTIONS", "/api/rooms", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Expected Allow-Methods header on preflight")
	}
}
