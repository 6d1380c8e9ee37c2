package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner"`
	RequestID   int64  `json:"requestId,omitempty"`
}

// ItemPatch carries only the fields present in a PATCH body.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

// HasChanges reports whether the patch touches at least one field.
func (p ItemPatch) HasChanges() bool {
	return p.Name != nil || p.Description != nil || p.Available != nil || p.RequestID != nil
}

// ItemView is the API shape of an item. LastBooking and NextBooking are only
// filled on owner views; Comments only on the single-item view.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	OwnerID     int64         `json:"owner"`
	RequestID   int64         `json:"requestId,omitempty"`
	LastBooking *BookingRef   `json:"lastBooking"`
	NextBooking *BookingRef   `json:"nextBooking"`
	Comments    []CommentView `json:"comments,omitempty"`
}
