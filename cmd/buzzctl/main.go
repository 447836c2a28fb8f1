// Command buzzctl is a small terminal client for the buzzer server. It
// lists live rooms over the REST API and can join a room over WebSocket to
// watch its events or press the buzzer, which is handy for demos and for
// eyeballing latency without a browser.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"

	"github.com/MaxbanCh/qpui.back/game/room"
)

func main() {
	cmd := &cli.Command{
		Name:  "buzzctl",
		Usage: "Inspect and poke buzzer rooms from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: "http://localhost:3000",
				Usage: "Base URL of the buzzer server",
			},
			&cli.StringFlag{
				Name:  "user",
				Value: "buzzctl",
				Usage: "User id to present to the server",
			},
			&cli.StringFlag{
				Name:  "name",
				Value: "buzzctl",
				Usage: "Display name to present to the server",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "rooms",
				Usage:  "List live rooms",
				Action: runRooms,
			},
			{
				Name:      "watch",
				Usage:     "Join a room and print its events until interrupted",
				ArgsUsage: "<room code>",
				Action:    runWatch,
			},
			{
				Name:      "press",
				Usage:     "Join a room, press the buzzer once, and report the outcome",
				ArgsUsage: "<room code>",
				Action:    runPress,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runRooms(ctx context.Context, cmd *cli.Command) error {
	url := cmd.String("server") + "/api/rooms"
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	var body struct {
		Count int             `json:"count"`
		Rooms []room.Snapshot `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode room list: %w", err)
	}

	if body.Count == 0 {
		fmt.Println("No live rooms.")
		return nil
	}
	for _, r := range body.Rooms {
		buzzer := r.ActiveBuzzer
		if buzzer == "" {
			buzzer = "-"
		}
		fmt.Printf("%s  host=%s  players=%d  buzzer=%s\n", r.Code, r.Host, len(r.Players), buzzer)
	}
	return nil
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	code := cmd.Args().First()
	if code == "" {
		return fmt.Errorf("room code required")
	}

	conn, err := dialAndJoin(cmd, code)
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		conn.Close()
	}()

	fmt.Printf("Watching room %s (Ctrl-C to stop)\n", code)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil
		}
		fmt.Println(string(data))
	}
}

func runPress(ctx context.Context, cmd *cli.Command) error {
	code := cmd.Args().First()
	if code == "" {
		return fmt.Errorf("room code required")
	}

	conn, err := dialAndJoin(cmd, code)
	if err != nil {
		return err
	}
	defer conn.Close()

	press := map[string]interface{}{
		"type":      "PRESS_BUZZER",
		"userId":    cmd.String("user"),
		"username":  cmd.String("name"),
		"roomCode":  code,
		"timestamp": time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(press); err != nil {
		return fmt.Errorf("failed to press: %w", err)
	}

	// The winning press comes back as a room broadcast; a locked buzzer
	// as a direct reply; a lost race as silence.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			fmt.Println("No buzz: someone else already holds the buzzer.")
			return nil
		}
		switch msg["type"] {
		case "BUZZER_PRESSED":
			fmt.Printf("Buzzed! winner=%v at t=%v\n", msg["playerId"], msg["timestamp"])
			return nil
		case "BUZZER_LOCKED":
			fmt.Println("Buzzer locked by the host.")
			return nil
		}
	}
}

// dialAndJoin opens the WebSocket endpoint and joins the given room.
func dialAndJoin(cmd *cli.Command, code string) (*websocket.Conn, error) {
	wsURL := strings.Replace(cmd.String("server"), "http", "ws", 1) + "/BuzzerRoom"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	join := map[string]interface{}{
		"type":     "JOIN_ROOM",
		"userId":   cmd.String("user"),
		"username": cmd.String("name"),
		"roomCode": code,
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to join room: %w", err)
	}
	return conn, nil
}
