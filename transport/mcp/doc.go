// Package mcp provides a Model Context Protocol surface for the buzzer
// server.
//
// The mcp package implements:
//   - MCP tool definitions over live buzzer rooms
//   - A thin client that proxies every tool call to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
//   - list_rooms: List all live rooms with player counts
//   - get_room: Get one room's host, players, scores, and buzzer state
//   - reset_buzzer: Release a room's buzzer (server-side host action)
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: direct stdio communication for local MCP clients
//   - HTTP: an /mcp endpoint on the main server for remote integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:3000")
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
