// Package api provides the HTTP surface of the buzzer server.
//
// The api package implements:
//   - The WebSocket upgrade endpoint for buzzer rooms
//   - A small read/admin REST API over live rooms
//   - CORS middleware with configurable allowed origins
//   - Health check and legacy cookie route
//
// Endpoints:
//
// WebSocket:
//   - GET /BuzzerRoom - upgrade to the buzzer room protocol
//
// Rooms:
//   - GET  /api/rooms               - list live rooms
//   - GET  /api/rooms/{code}        - get one room
//   - POST /api/rooms/{code}/buzzer/reset - release the buzzer (server-side
//     host action, broadcast to the room)
//
// Misc:
//   - GET /health      - liveness plus room/connection counts
//   - GET /get_cookies - legacy route kept for existing clients
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
