package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MaxbanCh/qpui.back/game/service"
	"github.com/MaxbanCh/qpui.back/game/store"
	"github.com/MaxbanCh/qpui.back/transport/websocket"
)

// Server is the HTTP surface: WebSocket upgrade, room REST API, CORS,
// health check.
type Server struct {
	service        service.BuzzerService
	hub            *websocket.Hub
	router         *mux.Router
	handler        http.Handler
	allowedOrigins []string
}

// NewServer creates the HTTP server. allowedOrigins lists the origins the
// CORS layer accepts; empty means allow any origin.
func NewServer(svc service.BuzzerService, hub *websocket.Hub, allowedOrigins []string) *Server {
	s := &Server{
		service:        svc,
		hub:            hub,
		router:         mux.NewRouter(),
		allowedOrigins: allowedOrigins,
	}

	s.setupRoutes()
	// CORS wraps the whole router so preflight requests are answered even
	// for routes registered with a single method.
	s.handler = s.corsMiddleware(s.router)
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	// WebSocket upgrade endpoint; path kept from the original service.
	s.router.HandleFunc("/BuzzerRoom", s.handleWebSocket)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{code}", s.handleGetRoom).Methods("GET")
	api.HandleFunc("/rooms/{code}/buzzer/reset", s.handleResetBuzzer).Methods("POST")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/get_cookies", s.handleGetCookies).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// corsMiddleware applies the configured origin policy and answers
// preflight requests.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Room handlers

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.service.ListRooms(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	snap, err := s.service.GetRoom(r.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, "room not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// handleResetBuzzer releases a room's buzzer from the server side, acting
// as the room's current host, and broadcasts BUZZER_RESET to the members.
func (s *Server) handleResetBuzzer(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	snap, err := s.service.GetRoom(r.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, "room not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.service.ResetBuzzer(r.Context(), code, snap.Host); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.hub.BroadcastToRoom(code, websocket.BuzzerResetMessage{Type: websocket.MsgBuzzerReset})
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"rooms":   len(s.service.ListRooms(r.Context())),
		"clients": s.hub.ClientCount(),
	})
}

// handleGetCookies mirrors the original service's cookie route, which the
// web client uses as a reachability probe.
func (s *Server) handleGetCookies(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Miam les cookies !"))
}
