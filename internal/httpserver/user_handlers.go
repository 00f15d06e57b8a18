package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medinbox/internal/domain"
	"medinbox/internal/service"
)

func handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, CurrentUser(r))
	}
}

type statusRequest struct {
	Status domain.UserStatus `json:"status"`
}

func handleSetStatus(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		current := CurrentUser(r)
		if err := userSvc.SetStatus(r.Context(), current.ID, req.Status); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
	}
}

func handleListUsers(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userSvc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// handleGetUser never returns 404: unknown ids resolve to a placeholder so
// message authors outside the directory still render.
func handleGetUser(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "userID")
		name := r.URL.Query().Get("name")
		if name == "" {
			name = id
		}
		user, err := userSvc.ResolveSender(r.Context(), id, name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
