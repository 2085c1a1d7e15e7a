package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ppttheme/internal/models"
	"ppttheme/internal/services"
)

const writeWait = 10 * time.Second

// SessionHandler handles live edit sessions over HTTP and websocket
type SessionHandler struct {
	hub      *services.SessionHub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(hub *services.SessionHub, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		logger: logger,
	}
}

// SessionResponse represents a session and its current document
type SessionResponse struct {
	ID       string                       `json:"id"`
	Settings *models.PresentationSettings `json:"settings"`
}

// CommandResponse represents the result of one command
type CommandResponse struct {
	Success  bool                         `json:"success"`
	Message  string                       `json:"message,omitempty"`
	Settings *models.PresentationSettings `json:"settings,omitempty"`
}

// CreateSession starts a hosted edit session
// POST /api/ppttheme/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	hs := h.hub.Create()

	writeJSON(w, http.StatusCreated, SessionResponse{
		ID:       hs.ID,
		Settings: hs.Snapshot(),
	})
}

// GetSession returns the current document of a session
// GET /api/ppttheme/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	hs, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		ID:       hs.ID,
		Settings: hs.Snapshot(),
	})
}

// DeleteSession ends a session
// DELETE /api/ppttheme/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.hub.Remove(mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExecuteCommand applies one command without a websocket
// POST /api/ppttheme/sessions/{id}/commands
func (h *SessionHandler) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	hs, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var cmd services.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if cmd.Op == "" {
		http.Error(w, "op is required", http.StatusBadRequest)
		return
	}

	doc, err := hs.Execute(cmd)
	if err != nil {
		writeJSON(w, commandStatus(err), CommandResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, CommandResponse{Success: true, Settings: doc})
}

// commandStatus maps a rejected command to an HTTP status
func commandStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSlideNotFound),
		errors.Is(err, services.ErrFontPresetNotFound),
		errors.Is(err, services.ErrUnknownTheme),
		errors.Is(err, services.ErrUnknownSlideSize):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Connect upgrades to a websocket attached to a session. Every change is
// pushed as a snapshot event; rejected commands come back as error events.
// GET /api/ppttheme/sessions/{id}/ws
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	hs, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("session", hs.ID), zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := hs.Subscribe()
	defer cancel()

	replies := make(chan services.Event, 8)
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			var event services.Event
			select {
			case ev, ok := <-events:
				if !ok {
					// session ended; closing the conn also stops the reader
					msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended")
					conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
					conn.Close()
					return
				}
				event = ev
			case event = <-replies:
			case <-readerDone:
				return
			}

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("WebSocket write failed", zap.String("session", hs.ID), zap.Error(err))
				conn.Close()
				return
			}
		}
	}()

	h.logger.Info("Client attached", zap.String("session", hs.ID))
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var reply *services.Event
		var cmd services.Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			reply = &services.Event{Type: services.EventError, Message: "Invalid JSON"}
		} else if _, err := hs.Execute(cmd); err != nil {
			reply = &services.Event{Type: services.EventError, Message: err.Error()}
		}

		if reply != nil {
			select {
			case replies <- *reply:
			default:
				h.logger.Warn("Dropping error reply for slow client", zap.String("session", hs.ID))
			}
		}
	}

	close(readerDone)
	<-writerDone
	h.logger.Info("Client detached", zap.String("session", hs.ID))
}
