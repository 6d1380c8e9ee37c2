package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// EventPublisher decouples the booking lifecycle from its subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService struct {
	db       *database.DB
	eventBus EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(db *database.DB, eventBus EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{db: db, eventBus: eventBus, logger: logger}
}

func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.BookingView, error) {
	booker, err := s.db.GetUser(ctx, bookerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("user %d not found", bookerID)
	}
	if err != nil {
		return nil, err
	}

	item, err := s.db.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}

	if bookerID == item.OwnerID {
		// Owners cannot book their own items; masked as not-found.
		return nil, NotFound("item %d not found", itemID)
	}
	if !item.Available {
		return nil, Validation("item %d is not available", itemID)
	}

	now := time.Now()
	if !start.Before(end) {
		return nil, Validation("booking start must be before its end")
	}
	if start.Before(now) || end.Before(now) {
		return nil, Validation("booking dates cannot be in the past")
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.db.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking, item)
	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", itemID).Int64("booker_id", bookerID).Msg("booking created")

	return bookingView(booking, booker, item), nil
}

func (s *BookingService) Get(ctx context.Context, bookingID, requesterID int64) (*models.BookingView, error) {
	booking, err := s.db.GetBooking(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}

	item, err := s.db.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	// Only the booker and the item owner may see the booking; anyone else
	// gets not-found so the booking's existence does not leak.
	if requesterID != booking.BookerID && requesterID != item.OwnerID {
		return nil, NotFound("booking %d not found", bookingID)
	}

	booker, err := s.db.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return bookingView(booking, booker, item), nil
}

// UpdateStatus transitions a WAITING booking to APPROVED or REJECTED. Only
// the item owner may do so, and an APPROVED booking stays APPROVED.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, requesterID int64, approved bool) (*models.BookingView, error) {
	if _, err := s.db.GetUser(ctx, requesterID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", requesterID)
		}
		return nil, err
	}

	booking, err := s.db.GetBooking(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}

	item, err := s.db.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, NotFound("booking %d not found", bookingID)
	}

	if booking.Status == models.StatusApproved {
		return nil, Validation("booking %d is already approved", bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.db.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.publishEvent(eventType, booking, item)
	s.logger.Info().Int64("booking_id", bookingID).Str("status", status).Msg("booking status updated")

	booker, err := s.db.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return bookingView(booking, booker, item), nil
}

// ListByBooker returns the caller's bookings filtered by logical state.
// Pagination applies to the ALL state only.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]models.BookingView, error) {
	if _, err := s.db.GetUser(ctx, bookerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", bookerID)
		}
		return nil, err
	}

	parsed, err := models.ParseState(state)
	if err != nil {
		return nil, Validation("%s", err.Error())
	}

	now := time.Now()
	switch parsed {
	case models.StatePast:
		return s.db.BookingsByBookerPast(ctx, bookerID, now)
	case models.StateCurrent:
		return s.db.BookingsByBookerCurrent(ctx, bookerID, now)
	case models.StateFuture:
		return s.db.BookingsByBookerFuture(ctx, bookerID, now)
	case models.StateWaiting, models.StateRejected:
		return s.db.BookingsByBookerStatus(ctx, bookerID, parsed)
	default:
		limit, offset := pageWindow(from, size)
		return s.db.BookingsByBooker(ctx, bookerID, limit, offset)
	}
}

// ListByOwner returns bookings of every item the caller owns, filtered by
// logical state.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]models.BookingView, error) {
	if _, err := s.db.GetUser(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", ownerID)
		}
		return nil, err
	}

	parsed, err := models.ParseState(state)
	if err != nil {
		return nil, Validation("%s", err.Error())
	}

	now := time.Now()
	switch parsed {
	case models.StatePast:
		return s.db.BookingsByOwnerPast(ctx, ownerID, now)
	case models.StateCurrent:
		return s.db.BookingsByOwnerCurrent(ctx, ownerID, now)
	case models.StateFuture:
		return s.db.BookingsByOwnerFuture(ctx, ownerID, now)
	case models.StateWaiting, models.StateRejected:
		return s.db.BookingsByOwnerStatus(ctx, ownerID, parsed)
	default:
		limit, offset := pageWindow(from, size)
		return s.db.BookingsByOwner(ctx, ownerID, limit, offset)
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, item *models.Item) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  item.Name,
		BookerID:  booking.BookerID,
		OwnerID:   item.OwnerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func pageWindow(from, size int) (limit, offset int) {
	if size <= 0 {
		return 0, 0
	}
	return size, models.PageOffset(from, size)
}

func bookingView(booking *models.Booking, booker *models.User, item *models.Item) *models.BookingView {
	return &models.BookingView{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Booker: models.UserRef{ID: booker.ID, Name: booker.Name},
		Item:   models.ItemRef{ID: item.ID, Name: item.Name},
	}
}
