package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/models"
)

// requireUser checks the user identity header without touching the body.
func requireUser(r *http.Request) error {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return fmt.Errorf("%s header is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%s header must be a positive integer", models.HeaderUserID)
	}
	return nil
}

// readBody buffers the request body so it can be validated here and still
// forwarded upstream.
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func validatePaging(r *http.Request) error {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v < 0 {
			return fmt.Errorf("from must be a non-negative integer")
		}
	}
	if raw := q.Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v <= 0 {
			return fmt.Errorf("size must be a positive integer")
		}
	}
	return nil
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.client.Forward(w, r, nil)

	case http.MethodPost:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var body struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Name) == "" {
			writeError(w, http.StatusBadRequest, "user name is required")
			return
		}
		if strings.TrimSpace(body.Email) == "" || !strings.Contains(body.Email, "@") {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodDelete:
		s.client.Forward(w, r, nil)

	case http.MethodPatch:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var patch models.UserPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if patch.Email != nil && (strings.TrimSpace(*patch.Email) == "" || !strings.Contains(*patch.Email, "@")) {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.client.Forward(w, r, nil)

	case http.MethodPost:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Available   *bool  `json:"available"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Name) == "" {
			writeError(w, http.StatusBadRequest, "item name is required")
			return
		}
		if strings.TrimSpace(body.Description) == "" {
			writeError(w, http.StatusBadRequest, "item description is required")
			return
		}
		if body.Available == nil {
			writeError(w, http.StatusBadRequest, "item availability is required")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleItemSubtree(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Path == "/items/search" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.client.Forward(w, r, nil)
		return
	}

	if strings.HasSuffix(r.URL.Path, "/comment") {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Text) == "" {
			writeError(w, http.StatusBadRequest, "comment text is required")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.client.Forward(w, r, nil)
	case http.MethodPatch:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var patch models.ItemPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		if err := s.validateListQuery(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.client.Forward(w, r, nil)

	case http.MethodPost:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var body struct {
			ItemID int64      `json:"itemId"`
			Start  *time.Time `json:"start"`
			End    *time.Time `json:"end"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.ItemID <= 0 {
			writeError(w, http.StatusBadRequest, "itemId is required")
			return
		}
		if body.Start == nil || body.End == nil {
			writeError(w, http.StatusBadRequest, "start and end are required")
			return
		}
		if !body.Start.Before(*body.End) {
			writeError(w, http.StatusBadRequest, "booking start must be before its end")
			return
		}
		if body.Start.Before(time.Now()) {
			writeError(w, http.StatusBadRequest, "booking dates cannot be in the past")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookingSubtree(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.URL.Path {
	case "/bookings/owner":
		if err := s.validateListQuery(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.client.Forward(w, r, nil)
		return
	case "/bookings/export":
		s.client.Forward(w, r, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.client.Forward(w, r, nil)
	case http.MethodPatch:
		approved := r.URL.Query().Get("approved")
		if approved != "true" && approved != "false" {
			writeError(w, http.StatusBadRequest, "approved must be true or false")
			return
		}
		s.client.Forward(w, r, nil)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) validateListQuery(r *http.Request) error {
	if _, err := models.ParseState(r.URL.Query().Get("state")); err != nil {
		return err
	}
	return validatePaging(r)
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.client.Forward(w, r, nil)

	case http.MethodPost:
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var body struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Description) == "" {
			writeError(w, http.StatusBadRequest, "request description is required")
			return
		}
		s.client.Forward(w, r, bytes.NewReader(raw))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRequestSubtree(w http.ResponseWriter, r *http.Request) {
	if err := requireUser(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.URL.Path == "/requests/all" {
		if err := validatePaging(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.client.Forward(w, r, nil)
}
