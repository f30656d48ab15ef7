package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/KirkDiggler/scribble/internal/auth"
	"github.com/KirkDiggler/scribble/internal/models"
	"github.com/KirkDiggler/scribble/internal/services/room"
)

type createRoomRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"isPublic"`
	Password string `json:"password"`
}

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

type saveCanvasRequest struct {
	CanvasData string `json:"canvasData"`
}

// roomSummary is a room without its canvas, for listings and code lookups
type roomSummary struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	HostID      string    `json:"host"`
	HostName    string    `json:"hostName"`
	IsPublic    bool      `json:"isPublic"`
	HasPassword bool      `json:"hasPassword"`
	LastActive  time.Time `json:"lastActive"`
}

// roomDetail adds the canvas and settings. The password hash never leaves the server.
type roomDetail struct {
	roomSummary
	CanvasData string              `json:"canvasData"`
	Settings   models.RoomSettings `json:"settings"`
	CreatedAt  time.Time           `json:"createdAt"`
}

func summarize(r *models.Room) roomSummary {
	return roomSummary{
		ID:          r.ID,
		Name:        r.Name,
		Code:        r.Code,
		HostID:      r.HostID,
		HostName:    r.HostName,
		IsPublic:    r.IsPublic,
		HasPassword: r.HasPassword(),
		LastActive:  r.LastActive,
	}
}

func summarizeAll(rooms []*models.Room) []roomSummary {
	return lo.Map(rooms, func(r *models.Room, _ int) roomSummary {
		return summarize(r)
	})
}

func detail(r *models.Room) roomDetail {
	return roomDetail{
		roomSummary: summarize(r),
		CanvasData:  r.CanvasData,
		Settings:    r.Settings,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "connections": s.hub.Count()})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := s.rooms.CreateRoom(r.Context(), &room.CreateRoomInput{
		Name:     req.Name,
		IsPublic: req.IsPublic,
		Password: req.Password,
		Host:     identity,
	})
	if err != nil {
		if errors.Is(err, room.ErrRoomNameRequired) {
			writeError(w, http.StatusBadRequest, "Room name required")
			return
		}
		s.internalError(w, err, "failed to create room")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"room": summarize(output.Room)})
}

func (s *Server) handleListPublicRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.ListPublic(r.Context())
	if err != nil {
		s.internalError(w, err, "failed to list public rooms")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": summarizeAll(rooms)})
}

func (s *Server) handleListMyRooms(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	rooms, err := s.rooms.ListMine(r.Context(), &room.ListMineInput{HostID: identity.UserID})
	if err != nil {
		s.internalError(w, err, "failed to list hosted rooms")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": summarizeAll(rooms)})
}

func (s *Server) handleFindRoomByCode(w http.ResponseWriter, r *http.Request) {
	found, err := s.rooms.FindByCode(r.Context(), &room.FindByCodeInput{Code: chi.URLParam(r, "code")})
	if err != nil {
		s.roomLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": summarize(found)})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	found, err := s.rooms.GetRoom(r.Context(), &room.GetRoomInput{RoomID: chi.URLParam(r, "id")})
	if err != nil {
		s.roomLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": detail(found)})
}

func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req verifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.rooms.VerifyPassword(r.Context(), &room.VerifyPasswordInput{
		RoomID:   chi.URLParam(r, "id"),
		Password: req.Password,
	})
	if errors.Is(err, room.ErrWrongPassword) {
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	if err != nil {
		s.roomLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSaveCanvas(w http.ResponseWriter, r *http.Request) {
	var req saveCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.rooms.StoreCanvas(r.Context(), &room.StoreCanvasInput{
		RoomID:     chi.URLParam(r, "id"),
		CanvasData: req.CanvasData,
	})
	if err != nil {
		s.roomLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	err := s.rooms.DeleteRoom(r.Context(), &room.DeleteRoomInput{
		RoomID: chi.URLParam(r, "id"),
		UserID: identity.UserID,
	})
	if errors.Is(err, room.ErrNotHost) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		s.roomLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) roomLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, room.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	}
	s.internalError(w, err, "failed to load room")
}

func (s *Server) internalError(w http.ResponseWriter, err error, msg string) {
	s.log.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// cors answers preflights and allows credentialed requests from permitted origins
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.checkOrigin(r) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
