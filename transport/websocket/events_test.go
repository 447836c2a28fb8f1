package websocket

import (
	"testing"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    Event
		wantErr bool
	}{
		{
			name:  "create room",
			frame: `{"type":"CREATE_ROOM","userId":"p1","username":"alice"}`,
			want:  CreateRoomEvent{UserID: "p1", Username: "alice"},
		},
		{
			name:  "join room",
			frame: `{"type":"JOIN_ROOM","userId":"p2","username":"bob","roomCode":"AB12CD"}`,
			want:  JoinRoomEvent{UserID: "p2", Username: "bob", RoomCode: "AB12CD"},
		},
		{
			name:  "press buzzer",
			frame: `{"type":"PRESS_BUZZER","userId":"p2","username":"bob","roomCode":"AB12CD","timestamp":100}`,
			want:  PressBuzzerEvent{UserID: "p2", Username: "bob", RoomCode: "AB12CD", Timestamp: 100},
		},
		{
			name:  "reset buzzer",
			frame: `{"type":"RESET_BUZZER","roomCode":"AB12CD"}`,
			want:  ResetBuzzerEvent{RoomCode: "AB12CD"},
		},
		{
			name:  "lock player",
			frame: `{"type":"LOCK_PLAYER_BUZZER","roomCode":"AB12CD","playerId":"p2","lock":true}`,
			want:  LockPlayerEvent{RoomCode: "AB12CD", PlayerID: "p2", Lock: true},
		},
		{
			name:  "award negative points",
			frame: `{"type":"AWARD_POINTS","roomCode":"AB12CD","playerId":"p2","points":-5}`,
			want:  AwardPointsEvent{RoomCode: "AB12CD", PlayerID: "p2", Points: -5},
		},
		{
			name:  "leave room",
			frame: `{"type":"LEAVE_ROOM"}`,
			want:  LeaveRoomEvent{},
		},
		{
			name:    "not json",
			frame:   `buzz{`,
			wantErr: true,
		},
		{
			name:    "unknown type",
			frame:   `{"type":"DANCE"}`,
			wantErr: true,
		},
		{
			name:    "missing type",
			frame:   `{"userId":"p1"}`,
			wantErr: true,
		},
		{
			name:    "create without userId",
			frame:   `{"type":"CREATE_ROOM","username":"alice"}`,
			wantErr: true,
		},
		{
			name:    "join without roomCode",
			frame:   `{"type":"JOIN_ROOM","userId":"p2","username":"bob"}`,
			wantErr: true,
		},
		{
			name:    "press without userId",
			frame:   `{"type":"PRESS_BUZZER","roomCode":"AB12CD"}`,
			wantErr: true,
		},
		{
			name:    "reset without roomCode",
			frame:   `{"type":"RESET_BUZZER"}`,
			wantErr: true,
		},
		{
			name:    "lock without playerId",
			frame:   `{"type":"LOCK_PLAYER_BUZZER","roomCode":"AB12CD","lock":true}`,
			wantErr: true,
		},
		{
			name:    "award without playerId",
			frame:   `{"type":"AWARD_POINTS","roomCode":"AB12CD","points":3}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent([]byte(tt.frame))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEvent failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
