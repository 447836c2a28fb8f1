package websocket

import (
	"context"
	"errors"
	"log"

	"github.com/MaxbanCh/qpui.back/game/room"
	"github.com/MaxbanCh/qpui.back/game/service"
	"github.com/MaxbanCh/qpui.back/game/store"
)

// Dispatcher routes parsed inbound events to the buzzer service and turns
// the results into replies and room broadcasts. It runs entirely on the
// hub loop, so no two events are ever handled concurrently.
type Dispatcher struct {
	service service.BuzzerService
	hub     *Hub
}

// NewDispatcher creates a dispatcher backed by the given service. The hub
// reference is wired by NewHub.
func NewDispatcher(svc service.BuzzerService) *Dispatcher {
	return &Dispatcher{service: svc}
}

// Dispatch parses one inbound frame and runs its handler. Malformed or
// unknown frames are logged and dropped; the connection stays open and no
// error is sent back.
func (d *Dispatcher) Dispatch(client *Client, data []byte) {
	event, err := ParseEvent(data)
	if err != nil {
		log.Printf("Dropping frame from client %s: %v", client.id, err)
		return
	}

	ctx := context.Background()

	switch ev := event.(type) {
	case CreateRoomEvent:
		d.handleCreateRoom(ctx, client, ev)
	case JoinRoomEvent:
		d.handleJoinRoom(ctx, client, ev)
	case PressBuzzerEvent:
		d.handlePressBuzzer(ctx, client, ev)
	case ResetBuzzerEvent:
		d.handleResetBuzzer(ctx, client, ev)
	case LockPlayerEvent:
		d.handleLockPlayer(ctx, client, ev)
	case AwardPointsEvent:
		d.handleAwardPoints(ctx, client, ev)
	case LeaveRoomEvent:
		// Departure is handled by connection closure; an explicit leave
		// changes nothing.
	}
}

// HandleDisconnect runs the departure path for a closing connection that
// had joined a room: the player is removed, an emptied room is deleted,
// and survivors are told who remains and who hosts now.
func (d *Dispatcher) HandleDisconnect(client *Client) {
	res, err := d.service.Leave(context.Background(), client.roomCode, client.userID)
	if err != nil {
		if !errors.Is(err, store.ErrRoomNotFound) {
			log.Printf("Leave failed for client %s: %v", client.id, err)
		}
		return
	}
	if !res.Left || res.RoomDeleted {
		return
	}

	// Detach before broadcasting so only survivors receive PLAYER_LEFT.
	d.hub.detachFromRoom(client)
	d.hub.broadcastToRoom(client.roomCode, PlayerLeftMessage{
		Type:    MsgPlayerLeft,
		Players: res.Players,
		NewHost: res.NewHost,
	})
}

func (d *Dispatcher) handleCreateRoom(ctx context.Context, client *Client, ev CreateRoomEvent) {
	snap, err := d.service.CreateRoom(ctx, ev.UserID, ev.Username)
	if err != nil {
		log.Printf("CreateRoom failed: %v", err)
		return
	}

	d.hub.attachToRoom(client, ev.UserID, ev.Username, snap.Code)
	d.hub.sendTo(client, RoomMessage{Type: MsgRoomCreated, Room: snap})
}

func (d *Dispatcher) handleJoinRoom(ctx context.Context, client *Client, ev JoinRoomEvent) {
	res, err := d.service.JoinRoom(ctx, ev.UserID, ev.Username, ev.RoomCode)
	if err != nil {
		log.Printf("JoinRoom %s failed: %v", ev.RoomCode, err)
		return
	}

	d.hub.attachToRoom(client, ev.UserID, ev.Username, res.Room.Code)

	if res.Created {
		// The requested code had no live room; the join fell back to
		// creating a fresh one with the joiner as host.
		d.hub.sendTo(client, RoomMessage{Type: MsgRoomCreated, Room: res.Room})
		return
	}

	d.hub.sendTo(client, RoomMessage{Type: MsgRoomJoined, Room: res.Room})
	d.hub.broadcastToRoom(res.Room.Code, PlayersMessage{Type: MsgPlayerJoined, Players: res.Room.Players})
}

func (d *Dispatcher) handlePressBuzzer(ctx context.Context, client *Client, ev PressBuzzerEvent) {
	outcome, err := d.service.PressBuzzer(ctx, ev.RoomCode, ev.UserID)
	if err != nil {
		// Pressing in a nonexistent room is a silent no-op.
		return
	}

	switch outcome {
	case room.PressWon:
		d.hub.broadcastToRoom(ev.RoomCode, BuzzerPressedMessage{
			Type:      MsgBuzzerPressed,
			PlayerID:  ev.UserID,
			Username:  ev.Username,
			Timestamp: ev.Timestamp,
		})
	case room.PressLocked:
		d.hub.sendTo(client, BuzzerLockedMessage{
			Type:    MsgBuzzerLocked,
			Locked:  true,
			Message: "Your buzzer is locked by the host",
		})
	case room.PressLost, room.PressNotMember:
		// First successful press wins; everyone else gets nothing.
	}
}

func (d *Dispatcher) handleResetBuzzer(ctx context.Context, client *Client, ev ResetBuzzerEvent) {
	if err := d.service.ResetBuzzer(ctx, ev.RoomCode, client.userID); err != nil {
		// Non-host resets and unknown rooms are silently ignored.
		return
	}
	d.hub.broadcastToRoom(ev.RoomCode, BuzzerResetMessage{Type: MsgBuzzerReset})
}

func (d *Dispatcher) handleLockPlayer(ctx context.Context, client *Client, ev LockPlayerEvent) {
	if err := d.service.LockPlayerBuzzer(ctx, ev.RoomCode, client.userID, ev.PlayerID, ev.Lock); err != nil {
		return
	}
	d.hub.broadcastToRoom(ev.RoomCode, PlayerBuzzerLockedMessage{
		Type:     MsgPlayerBuzzerLocked,
		PlayerID: ev.PlayerID,
		Locked:   ev.Lock,
	})
}

func (d *Dispatcher) handleAwardPoints(ctx context.Context, client *Client, ev AwardPointsEvent) {
	res, err := d.service.AwardPoints(ctx, ev.RoomCode, client.userID, ev.PlayerID, ev.Points)
	if err != nil {
		return
	}
	d.hub.broadcastToRoom(ev.RoomCode, PointsUpdatedMessage{
		Type:    MsgPointsUpdated,
		Scores:  res.Scores,
		Players: res.Players,
	})
}
