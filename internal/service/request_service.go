package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewRequestService(db *database.DB, logger *zerolog.Logger) *RequestService {
	return &RequestService{db: db, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requestorID int64, description string) (*models.RequestView, error) {
	if _, err := s.db.GetUser(ctx, requestorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", requestorID)
		}
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, Validation("request description is required")
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now(),
	}
	if err := s.db.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requestor_id", requestorID).Msg("request created")
	return s.requestView(ctx, request)
}

func (s *RequestService) Get(ctx context.Context, requestID, viewerID int64) (*models.RequestView, error) {
	if _, err := s.db.GetUser(ctx, viewerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", viewerID)
		}
		return nil, err
	}

	request, err := s.db.GetRequest(ctx, requestID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("request %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	return s.requestView(ctx, request)
}

// ListOwn returns the caller's requests, newest first, with responses.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]models.RequestView, error) {
	if _, err := s.db.GetUser(ctx, requestorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", requestorID)
		}
		return nil, err
	}

	requests, err := s.db.RequestsByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.requestViews(ctx, requests)
}

// ListOthers returns requests created by other users, newest first.
func (s *RequestService) ListOthers(ctx context.Context, requestorID int64, from, size int) ([]models.RequestView, error) {
	if _, err := s.db.GetUser(ctx, requestorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", requestorID)
		}
		return nil, err
	}

	limit, offset := pageWindow(from, size)
	requests, err := s.db.RequestsByOthers(ctx, requestorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.requestViews(ctx, requests)
}

func (s *RequestService) requestViews(ctx context.Context, requests []models.ItemRequest) ([]models.RequestView, error) {
	views := make([]models.RequestView, 0, len(requests))
	for i := range requests {
		view, err := s.requestView(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *RequestService) requestView(ctx context.Context, request *models.ItemRequest) (*models.RequestView, error) {
	items, err := s.db.GetItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return &models.RequestView{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       items,
	}, nil
}
