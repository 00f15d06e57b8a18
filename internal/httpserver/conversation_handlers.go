package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medinbox/internal/domain"
	"medinbox/internal/inbox"
	"medinbox/internal/service"
)

type conversationCreateRequest struct {
	Type           domain.ConversationType `json:"type"`
	Name           string                  `json:"name"`
	PatientID      *string                 `json:"patient_id"`
	ProviderName   *string                 `json:"provider_name"`
	ParticipantIDs []string                `json:"participant_ids"`
	IsUrgent       bool                    `json:"is_urgent"`
}

func handleCreateConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conversationCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		conv, err := convSvc.CreateConversation(r.Context(), service.ConversationCreateInput{
			Type:           req.Type,
			Name:           req.Name,
			PatientID:      req.PatientID,
			ProviderName:   req.ProviderName,
			ParticipantIDs: req.ParticipantIDs,
			IsUrgent:       req.IsUrgent,
		}, CurrentUser(r).ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, conv)
	}
}

// handleListConversations serves the inbox: ?q= searches names, providers
// and the last message; ?status= and ?tab= narrow the list.
func handleListConversations(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		status, err := inbox.ParseStatusFilter(query.Get("status"))
		if err != nil {
			writeError(w, err)
			return
		}
		tab, err := inbox.ParseTabFilter(query.Get("tab"))
		if err != nil {
			writeError(w, err)
			return
		}

		cards, err := convSvc.Inbox(r.Context(), inbox.Query{Text: query.Get("q"), Status: status, Tab: tab})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func handleStats(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := convSvc.Stats(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleGetConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := convSvc.GetConversation(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleMarkConversationRead(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := convSvc.MarkAsRead(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleTogglePin(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := convSvc.TogglePin(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleToggleMute(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := convSvc.ToggleMute(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleListMessages(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := convSvc.Thread(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

func handleListTeams(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := convSvc.Teams(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func handleGetPatient(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := convSvc.Patient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
