package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		views, err := s.requests.ListOwn(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if views == nil {
			views = []models.RequestView{}
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var body struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		view, err := s.requests.Create(r.Context(), userID, body.Description)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRequestSubtree(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Path == "/requests/all" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		from, size, err := pageParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		views, err := s.requests.ListOthers(r.Context(), userID, from, size)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if views == nil {
			views = []models.RequestView{}
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	id, rest, err := pathID(r.URL.Path, "/requests/")
	if err != nil || rest != "" {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	view, err := s.requests.Get(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
