package room

import "sync"

// Player is one entry of a room's ordered member list.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Locked   bool   `json:"locked,omitempty"`
}

// ScoredPlayer is a Player annotated with the player's current score,
// used in POINTS_UPDATED payloads.
type ScoredPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Locked   bool   `json:"locked,omitempty"`
	Score    int    `json:"score"`
}

// Snapshot is an immutable value copy of a room, safe to serialize after
// the originating lock has been released.
type Snapshot struct {
	Code         string         `json:"code"`
	Host         string         `json:"host"`
	Players      []Player       `json:"players"`
	Scores       map[string]int `json:"scores"`
	ActiveBuzzer string         `json:"activeBuzzer"`
}

// PressOutcome is the result of a buzzer press attempt.
type PressOutcome int

const (
	// PressWon means the presser claimed the buzzer; broadcast it.
	PressWon PressOutcome = iota
	// PressLost means another player already holds the buzzer; silent drop.
	PressLost
	// PressLocked means the presser's buzzer is locked by the host; the
	// presser alone gets a BUZZER_LOCKED reply.
	PressLocked
	// PressNotMember means the presser is not in the room.
	PressNotMember
)

// Room is the shared state of one buzzer room. All exported methods lock
// the room, so its fields must never be read without going through them.
type Room struct {
	mu           sync.Mutex
	code         string
	host         string
	players      []Player
	scores       map[string]int
	activeBuzzer string
}

// New creates a room with the given code and the creator as host and sole
// member. Scores start empty and the buzzer unclaimed.
func New(code, hostID, hostName string) *Room {
	return &Room{
		code:    code,
		host:    hostID,
		players: []Player{{ID: hostID, Username: hostName}},
		scores:  make(map[string]int),
	}
}

// Code returns the room's immutable code.
func (r *Room) Code() string {
	return r.code
}

// Host returns the current host's player ID.
func (r *Room) Host() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host
}

// IsHost reports whether id is the room's current host.
func (r *Room) IsHost(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host == id
}

// AddPlayer appends a player to the member list. Joining twice with the
// same ID is idempotent: the list is unchanged and added is false.
func (r *Room) AddPlayer(id, username string) (players []Player, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(id) < 0 {
		r.players = append(r.players, Player{ID: id, Username: username})
		added = true
	}
	return r.copyPlayers(), added
}

// RemovePlayer removes the player with the given ID. If the departing
// player was host, the first remaining player by join order is promoted.
// empty reports whether the room has no members left (the caller should
// delete it from the store); removed reports whether id was a member.
func (r *Room) RemovePlayer(id string) (players []Player, newHost string, empty, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return r.copyPlayers(), r.host, len(r.players) == 0, false
	}

	r.players = append(r.players[:i], r.players[i+1:]...)
	if len(r.players) == 0 {
		return nil, r.host, true, true
	}
	if r.host == id {
		r.host = r.players[0].ID
	}
	if r.activeBuzzer == id {
		r.activeBuzzer = ""
	}
	return r.copyPlayers(), r.host, false, true
}

// Press attempts to claim the buzzer for the given player. The claim is a
// compare-and-set under the room lock: it succeeds only when no player
// currently holds the buzzer, so two racing presses can never both win.
func (r *Room) Press(id string) PressOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return PressNotMember
	}
	if r.players[i].Locked {
		return PressLocked
	}
	if r.activeBuzzer != "" {
		return PressLost
	}
	r.activeBuzzer = id
	return PressWon
}

// ActiveBuzzer returns the ID of the player holding the buzzer, or "" if
// the buzzer is unclaimed.
func (r *Room) ActiveBuzzer() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeBuzzer
}

// ResetBuzzer releases the buzzer for the next round.
func (r *Room) ResetBuzzer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeBuzzer = ""
}

// SetPlayerLock sets the locked flag of the target player and reports
// whether the player exists in the room.
func (r *Room) SetPlayerLock(playerID string, lock bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(playerID)
	if i < 0 {
		return false
	}
	r.players[i].Locked = lock
	return true
}

// AwardPoints adds delta to the target player's score, initializing an
// absent score to zero first. Negative deltas deduct points. The returned
// scores map is a copy and the players list carries each member's current
// score for broadcasting.
func (r *Room) AwardPoints(playerID string, delta int) (scores map[string]int, players []ScoredPlayer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scores[playerID]; !ok {
		r.scores[playerID] = 0
	}
	r.scores[playerID] += delta

	scores = make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		scores[id] = s
	}
	players = make([]ScoredPlayer, len(r.players))
	for i, p := range r.players {
		players[i] = ScoredPlayer{
			ID:       p.ID,
			Username: p.Username,
			Locked:   p.Locked,
			Score:    r.scores[p.ID],
		}
	}
	return scores, players
}

// Players returns a copy of the ordered member list.
func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyPlayers()
}

// Len returns the number of members.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Snapshot returns a value copy of the room for serialization.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	scores := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		scores[id] = s
	}
	return Snapshot{
		Code:         r.code,
		Host:         r.host,
		Players:      r.copyPlayers(),
		Scores:       scores,
		ActiveBuzzer: r.activeBuzzer,
	}
}

// indexOf returns the position of the player with the given ID, or -1.
// Caller must hold r.mu.
func (r *Room) indexOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// copyPlayers returns a copy of the member list. Caller must hold r.mu.
func (r *Room) copyPlayers() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}
