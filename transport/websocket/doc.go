// Package websocket provides the WebSocket transport for buzzer rooms.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Room-aware WebSocket connections
//   - Buzzer and membership event broadcasting
//   - Connection lifecycle management
//   - Typed event parsing and dispatch
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup, while a single hub
// loop serializes registration, room membership changes, and dispatch.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {type: "PRESS_BUZZER", userId: "u1", username: "Ana", roomCode: "K3J9QZ", timestamp: 1712000000000}
//   - Outgoing: typed events such as ROOM_CREATED, BUZZER_PRESSED, PLAYER_LEFT
//
// Room Integration:
//
// A connection becomes room-bound after its first CREATE_ROOM or JOIN_ROOM
// event, and broadcasts are fanned out only to the clients attached to the
// same room code. When a connection drops, the client's departure is played
// through the service so host promotion and empty-room deletion behave the
// same as an explicit leave.
//
// Usage:
//
//	dispatcher := websocket.NewDispatcher(buzzerService)
//	hub := websocket.NewHub(dispatcher)
//	go hub.Run()
//
//	http.HandleFunc("/BuzzerRoom", hub.ServeWS)
//
// Connection Lifecycle:
//
// 1. Client connects and upgrades
// 2. Connection registered with hub
// 3. Client creates or joins a room
// 4. Client sends events, receives room broadcasts
// 5. Disconnection triggers the leave flow and cleanup
//
// Concurrency:
//
// The hub loop owns the client and room maps, so pumps and HTTP handlers
// never touch them directly. Multiple clients can connect, disconnect, and
// send events simultaneously without blocking each other.
package websocket
