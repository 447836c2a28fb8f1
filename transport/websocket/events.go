package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/MaxbanCh/qpui.back/game/room"
)

// Inbound event types.
const (
	EventCreateRoom  = "CREATE_ROOM"
	EventJoinRoom    = "JOIN_ROOM"
	EventPressBuzzer = "PRESS_BUZZER"
	EventResetBuzzer = "RESET_BUZZER"
	EventLockPlayer  = "LOCK_PLAYER_BUZZER"
	EventAwardPoints = "AWARD_POINTS"
	EventLeaveRoom   = "LEAVE_ROOM"
)

// Outbound message types.
const (
	MsgRoomCreated        = "ROOM_CREATED"
	MsgRoomJoined         = "ROOM_JOINED"
	MsgPlayerJoined       = "PLAYER_JOINED"
	MsgBuzzerLocked       = "BUZZER_LOCKED"
	MsgBuzzerPressed      = "BUZZER_PRESSED"
	MsgBuzzerReset        = "BUZZER_RESET"
	MsgPlayerBuzzerLocked = "PLAYER_BUZZER_LOCKED"
	MsgPointsUpdated      = "POINTS_UPDATED"
	MsgPlayerLeft         = "PLAYER_LEFT"
)

// Event is the closed set of inbound events. Frames are decoded and
// validated once, at the boundary; handlers never touch raw JSON.
type Event interface {
	isEvent()
}

// CreateRoomEvent asks for a fresh room with the sender as host.
type CreateRoomEvent struct {
	UserID   string
	Username string
}

// JoinRoomEvent asks to join (or, on a miss, create) a room.
type JoinRoomEvent struct {
	UserID   string
	Username string
	RoomCode string
}

// PressBuzzerEvent is a buzzer press attempt. Timestamp is the client's
// press time, echoed verbatim in the BUZZER_PRESSED broadcast.
type PressBuzzerEvent struct {
	UserID    string
	Username  string
	RoomCode  string
	Timestamp int64
}

// ResetBuzzerEvent releases the buzzer for the next round. Host-only.
type ResetBuzzerEvent struct {
	RoomCode string
}

// LockPlayerEvent locks or unlocks one player's buzzer. Host-only.
type LockPlayerEvent struct {
	RoomCode string
	PlayerID string
	Lock     bool
}

// AwardPointsEvent adjusts one player's score. Host-only.
type AwardPointsEvent struct {
	RoomCode string
	PlayerID string
	Points   int
}

// LeaveRoomEvent is accepted and ignored: departure is handled uniformly
// by connection closure, so an explicit leave and a dropped socket behave
// identically.
type LeaveRoomEvent struct{}

func (CreateRoomEvent) isEvent()  {}
func (JoinRoomEvent) isEvent()    {}
func (PressBuzzerEvent) isEvent() {}
func (ResetBuzzerEvent) isEvent() {}
func (LockPlayerEvent) isEvent()  {}
func (AwardPointsEvent) isEvent() {}
func (LeaveRoomEvent) isEvent()   {}

// envelope carries the union of all inbound fields; ParseEvent narrows it
// to one typed event.
type envelope struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	RoomCode  string `json:"roomCode"`
	PlayerID  string `json:"playerId"`
	Lock      bool   `json:"lock"`
	Points    int    `json:"points"`
	Timestamp int64  `json:"timestamp"`
}

// ParseEvent decodes and validates one inbound frame. A frame that is not
// valid JSON, names an unknown type, or misses a required field yields an
// error; the dispatcher logs and drops it without closing the connection.
func ParseEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Type {
	case EventCreateRoom:
		if env.UserID == "" {
			return nil, fmt.Errorf("%s: missing userId", env.Type)
		}
		return CreateRoomEvent{UserID: env.UserID, Username: env.Username}, nil

	case EventJoinRoom:
		if env.UserID == "" || env.RoomCode == "" {
			return nil, fmt.Errorf("%s: missing userId or roomCode", env.Type)
		}
		return JoinRoomEvent{UserID: env.UserID, Username: env.Username, RoomCode: env.RoomCode}, nil

	case EventPressBuzzer:
		if env.UserID == "" || env.RoomCode == "" {
			return nil, fmt.Errorf("%s: missing userId or roomCode", env.Type)
		}
		return PressBuzzerEvent{
			UserID:    env.UserID,
			Username:  env.Username,
			RoomCode:  env.RoomCode,
			Timestamp: env.Timestamp,
		}, nil

	case EventResetBuzzer:
		if env.RoomCode == "" {
			return nil, fmt.Errorf("%s: missing roomCode", env.Type)
		}
		return ResetBuzzerEvent{RoomCode: env.RoomCode}, nil

	case EventLockPlayer:
		if env.RoomCode == "" || env.PlayerID == "" {
			return nil, fmt.Errorf("%s: missing roomCode or playerId", env.Type)
		}
		return LockPlayerEvent{RoomCode: env.RoomCode, PlayerID: env.PlayerID, Lock: env.Lock}, nil

	case EventAwardPoints:
		if env.RoomCode == "" || env.PlayerID == "" {
			return nil, fmt.Errorf("%s: missing roomCode or playerId", env.Type)
		}
		return AwardPointsEvent{RoomCode: env.RoomCode, PlayerID: env.PlayerID, Points: env.Points}, nil

	case EventLeaveRoom:
		return LeaveRoomEvent{}, nil

	default:
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
}

// Outbound messages. Each struct marshals to the wire shape the web client
// expects.

// RoomMessage replies ROOM_CREATED or ROOM_JOINED with the full room.
type RoomMessage struct {
	Type string        `json:"type"`
	Room room.Snapshot `json:"room"`
}

// PlayersMessage carries the updated player list (PLAYER_JOINED).
type PlayersMessage struct {
	Type    string        `json:"type"`
	Players []room.Player `json:"players"`
}

// BuzzerLockedMessage tells a locked presser their buzzer is disabled.
type BuzzerLockedMessage struct {
	Type    string `json:"type"`
	Locked  bool   `json:"locked"`
	Message string `json:"message,omitempty"`
}

// BuzzerPressedMessage announces the round's winning press.
type BuzzerPressedMessage struct {
	Type      string `json:"type"`
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// BuzzerResetMessage announces the buzzer is free again.
type BuzzerResetMessage struct {
	Type string `json:"type"`
}

// PlayerBuzzerLockedMessage announces a lock state change for one player.
type PlayerBuzzerLockedMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Locked   bool   `json:"locked"`
}

// PointsUpdatedMessage carries new scores plus the score-annotated player
// list.
type PointsUpdatedMessage struct {
	Type    string              `json:"type"`
	Scores  map[string]int      `json:"scores"`
	Players []room.ScoredPlayer `json:"players"`
}

// PlayerLeftMessage tells survivors who remains and who hosts now.
type PlayerLeftMessage struct {
	Type    string        `json:"type"`
	Players []room.Player `json:"players"`
	NewHost string        `json:"newHost"`
}
