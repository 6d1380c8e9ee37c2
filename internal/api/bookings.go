package api

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/export"
	"shareit/internal/models"
)

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r, userID, s.bookings.ListByBooker)

	case http.MethodPost:
		var body struct {
			ItemID int64     `json:"itemId"`
			Start  time.Time `json:"start"`
			End    time.Time `json:"end"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		view, err := s.bookings.Create(r.Context(), userID, body.ItemID, body.Start, body.End)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookingSubtree(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/bookings/owner":
		s.handleBookingsOwner(w, r)
		return
	case "/bookings/export":
		s.handleBookingsExport(w, r)
		return
	}

	id, rest, err := pathID(r.URL.Path, "/bookings/")
	if err != nil || rest != "" {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		view, err := s.bookings.Get(r.Context(), id, userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case http.MethodPatch:
		approvedRaw := r.URL.Query().Get("approved")
		if approvedRaw != "true" && approvedRaw != "false" {
			writeError(w, http.StatusBadRequest, "approved must be true or false")
			return
		}
		view, err := s.bookings.UpdateStatus(r.Context(), id, userID, approvedRaw == "true")
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookingsOwner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.listBookings(w, r, userID, s.bookings.ListByOwner)
}

// handleBookingsExport streams the bookings of the caller's items as an
// xlsx workbook.
func (s *Server) handleBookingsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	views, err := s.bookings.ListByOwner(r.Context(), userID, state, 0, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := export.WriteBookings(w, views); err != nil {
		s.logger.Error().Err(err).Msg("bookings export error")
	}
}

func (s *Server) listBookings(
	w http.ResponseWriter,
	r *http.Request,
	userID int64,
	list func(ctx context.Context, userID int64, state string, from, size int) ([]models.BookingView, error),
) {
	from, size, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	views, err := list(r.Context(), userID, state, from, size)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []models.BookingView{}
	}
	writeJSON(w, http.StatusOK, views)
}
