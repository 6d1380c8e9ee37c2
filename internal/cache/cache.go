package cache

import (
	"context"

	"shareit/internal/models"
)

// SearchCache stores search results keyed by query text. Invalidate drops
// every cached result at once; item mutations call it rather than tracking
// which queries a changed item can match.
type SearchCache interface {
	Get(ctx context.Context, text string) ([]models.Item, bool, error)
	Set(ctx context.Context, text string, items []models.Item) error
	Invalidate(ctx context.Context) error
}
