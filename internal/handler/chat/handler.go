package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatService "github.com/askgrid/backend/internal/service/chat"
	"github.com/askgrid/backend/pkg/utils"
)

// Handler adapts the session store to the REST surface.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the session and feedback endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Post("/sessions/{sessionID}/messages", h.handlePostMessage)
	r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
	r.Post("/feedback", h.handleFeedback)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title         string `json:"title"`
		FirstQuestion string `json:"firstQuestion"`
	}

	// An empty body is a legal way to create an untitled session.
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context(), payload.Title, payload.FirstQuestion)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"id":    session.ID,
		"title": session.Title,
	})
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summaries := h.chatSvc.ListSessions(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"sessions": summaries})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, assistant, err := h.chatSvc.AppendExchange(r.Context(), sessionID, payload.Question)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, chatService.ErrEmptyQuestion):
			utils.RespondError(w, http.StatusBadRequest, "Question is required")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"assistant": assistant})
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string  `json:"sessionId"`
		MessageID string  `json:"messageId"`
		Feedback  *string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Empty string clears feedback the same way null does.
	if payload.Feedback != nil && *payload.Feedback == "" {
		payload.Feedback = nil
	}

	err := h.chatSvc.SetFeedback(r.Context(), payload.SessionID, payload.MessageID, payload.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, chatService.ErrMessageNotFound):
			utils.RespondError(w, http.StatusNotFound, "Message not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Feedback saved",
	})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatSvc.DeleteSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
