package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medinbox/internal/domain"
	"medinbox/internal/service"
)

type messageCreateRequest struct {
	Content     string                     `json:"content"`
	Attachments []domain.MessageAttachment `json:"attachments"`
	IsUrgent    bool                       `json:"is_urgent"`
	ParentID    *string                    `json:"parent_id"`
}

func handleCreateMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := msgSvc.Send(r.Context(), service.SendInput{
			ConversationID: chi.URLParam(r, "conversationID"),
			Content:        req.Content,
			SenderID:       CurrentUser(r).ID,
			Attachments:    req.Attachments,
			IsUrgent:       req.IsUrgent,
			ParentID:       req.ParentID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

type inboundMessageRequest struct {
	messageCreateRequest
	SenderID string `json:"sender_id"`
}

// handleReceiveMessage records a message from another participant, as a
// KIM gateway would deliver it. It stays unread for the session user.
func handleReceiveMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inboundMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := msgSvc.Receive(r.Context(), service.SendInput{
			ConversationID: chi.URLParam(r, "conversationID"),
			Content:        req.Content,
			SenderID:       req.SenderID,
			Attachments:    req.Attachments,
			IsUrgent:       req.IsUrgent,
			ParentID:       req.ParentID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

type messageEditRequest struct {
	Content string `json:"content"`
}

func handleEditMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageEditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := msgSvc.Edit(r.Context(),
			chi.URLParam(r, "conversationID"),
			chi.URLParam(r, "messageID"),
			req.Content,
			CurrentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

func handleToggleReaction(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := msgSvc.React(r.Context(),
			chi.URLParam(r, "conversationID"),
			chi.URLParam(r, "messageID"),
			req.Emoji,
			CurrentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}
