package models

import "fmt"

// Booking status values as stored and served.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELED"
)

// Logical state filters for booking listings. ALL/PAST/CURRENT/FUTURE are
// time buckets; WAITING and REJECTED match the stored status directly.
const (
	StateAll      = "ALL"
	StatePast     = "PAST"
	StateCurrent  = "CURRENT"
	StateFuture   = "FUTURE"
	StateWaiting  = StatusWaiting
	StateRejected = StatusRejected
)

// ParseState normalizes a state query parameter. An empty value means ALL.
func ParseState(raw string) (string, error) {
	switch raw {
	case "":
		return StateAll, nil
	case StateAll, StatePast, StateCurrent, StateFuture, StateWaiting, StateRejected:
		return raw, nil
	default:
		return "", fmt.Errorf("Unknown state: %s", raw)
	}
}

const (
	// DefaultPageSize is used when a listing request carries no size parameter.
	DefaultPageSize = 10

	// HeaderUserID identifies the calling user on nearly every endpoint.
	HeaderUserID = "X-Sharer-User-Id"

	// HeaderRequestID propagates the request id between the tiers.
	HeaderRequestID = "X-Request-Id"
)

// PageOffset converts the from/size query pair into a row offset using the
// page-index derivation: page = from > 0 ? from/size : 0.
func PageOffset(from, size int) int {
	if size <= 0 {
		return 0
	}
	page := 0
	if from > 0 {
		page = from / size
	}
	return page * size
}
