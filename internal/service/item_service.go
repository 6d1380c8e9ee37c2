package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/internal/cache"
	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	db     *database.DB
	cache  cache.SearchCache
	logger *zerolog.Logger
}

func NewItemService(db *database.DB, searchCache cache.SearchCache, logger *zerolog.Logger) *ItemService {
	return &ItemService{db: db, cache: searchCache, logger: logger}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item models.Item) (*models.Item, error) {
	if _, err := s.db.GetUser(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", ownerID)
		}
		return nil, err
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, Validation("item name is required")
	}

	item.OwnerID = ownerID
	if err := s.db.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return &item, nil
}

func (s *ItemService) Update(ctx context.Context, itemID, callerID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := s.db.GetUser(ctx, callerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("user %d not found", callerID)
		}
		return nil, err
	}

	item, err := s.db.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	// Non-owners get not-found rather than forbidden.
	if item.OwnerID != callerID {
		return nil, NotFound("item %d not found", itemID)
	}

	// An empty patch changes nothing; skip the write and keep cached
	// searches alive.
	if !patch.HasChanges() {
		return item, nil
	}

	updated, err := s.db.UpdateItem(ctx, itemID, callerID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	s.logger.Info().Int64("item_id", itemID).Msg("item updated")
	return updated, nil
}

// Get returns a single item with its comments. Booking pointers are filled
// only when the viewer owns the item, and only from APPROVED bookings.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID int64) (*models.ItemView, error) {
	item, err := s.db.GetItem(ctx, itemID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}

	view := itemView(item)
	if view.Comments, err = s.db.CommentsByItem(ctx, itemID); err != nil {
		return nil, err
	}

	if viewerID == item.OwnerID {
		if err := s.attachBookings(ctx, view, true); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// List returns every item the owner holds, each with its last and next
// booking regardless of status.
func (s *ItemService) List(ctx context.Context, ownerID int64) ([]models.ItemView, error) {
	items, err := s.db.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ItemView, 0, len(items))
	for i := range items {
		view := itemView(&items[i])
		if err := s.attachBookings(ctx, view, false); err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Search finds available items matching the text, consulting the cache
// first. Cache failures degrade to a database query.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if s.cache != nil {
		items, hit, err := s.cache.Get(ctx, text)
		if err != nil {
			s.logger.Warn().Err(err).Msg("search cache read error")
		} else if hit {
			return items, nil
		}
	}

	items, err := s.db.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, items); err != nil {
			s.logger.Warn().Err(err).Msg("search cache write error")
		}
	}
	return items, nil
}

// AddComment lets a user who held an APPROVED booking that has started leave
// a comment on the item.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Validation("comment text is required")
	}

	author, err := s.db.GetUser(ctx, authorID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("user %d not found", authorID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.db.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("item %d not found", itemID)
		}
		return nil, err
	}

	now := time.Now()
	ok, err := s.db.HasApprovedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Validation("user %d has no completed booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     text,
		Created:  now,
	}
	if err := s.db.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("comment created")
	return &models.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

func (s *ItemService) attachBookings(ctx context.Context, view *models.ItemView, approvedOnly bool) error {
	now := time.Now()
	last, err := s.db.LastBookingForItem(ctx, view.ID, now, approvedOnly)
	if err != nil {
		return err
	}
	next, err := s.db.NextBookingForItem(ctx, view.ID, now, approvedOnly)
	if err != nil {
		return err
	}
	view.LastBooking = bookingRef(last)
	view.NextBooking = bookingRef(next)
	return nil
}

func (s *ItemService) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidate error")
	}
}

func itemView(item *models.Item) *models.ItemView {
	return &models.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

func bookingRef(b *models.Booking) *models.BookingRef {
	if b == nil {
		return nil
	}
	return &models.BookingRef{ID: b.ID, BookerID: b.BookerID}
}
