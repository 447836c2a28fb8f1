package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaxbanCh/qpui.back/game/room"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:3000"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expected := map[string]interface{}{
		"count": 1,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["count"] != float64(1) {
		t.Errorf("Expected count 1, got %v", response["count"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "room not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/rooms/NOPE00", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}
	if err.Error() != "room not found" {
		t.Errorf("Expected the API's error message, got %q", err.Error())
	}
}

func TestClient_apiCall_DecodesRoom(t *testing.T) {
	snap := room.Snapshot{
		Code:         "AB12CD",
		Host:         "p1",
		Players:      []room.Player{{ID: "p1", Username: "alice"}, {ID: "p2", Username: "bob", Locked: true}},
		Scores:       map[string]int{"p2": 10},
		ActiveBuzzer: "p2",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var got room.Snapshot
	if err := client.apiCall("GET", "/api/rooms/AB12CD", nil, &got); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if got.Code != "AB12CD" || got.ActiveBuzzer != "p2" || !got.Players[1].Locked {
		t.Errorf("Room not decoded correctly: %+v", got)
	}
}
