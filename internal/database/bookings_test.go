package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond)
	end := start.Add(24 * time.Hour)
	booking := createTestBooking(t, db, item.ID, booker.ID, start, end, models.StatusWaiting)

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
	assert.Equal(t, item.ID, got.ItemID)
	assert.Equal(t, booker.ID, got.BookerID)
	assert.Equal(t, models.StatusWaiting, got.Status)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(end))
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	booking := createTestBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	require.NoError(t, db.UpdateBookingStatus(ctx, booking.ID, models.StatusApproved))

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestLastAndNextBookingForItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	past := createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusWaiting)
	older := createTestBooking(t, db, item.ID, booker.ID, now.Add(-96*time.Hour), now.Add(-72*time.Hour), models.StatusApproved)
	next := createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusApproved)
	createTestBooking(t, db, item.ID, booker.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), models.StatusWaiting)

	// Any status: nearest past is the WAITING one.
	last, err := db.LastBookingForItem(ctx, item.ID, now, false)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, past.ID, last.ID)

	// APPROVED only: the older approved booking wins.
	last, err = db.LastBookingForItem(ctx, item.ID, now, true)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, older.ID, last.ID)

	got, err := db.NextBookingForItem(ctx, item.ID, now, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, next.ID, got.ID)
}

func TestLastBookingForItemNone(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	last, err := db.LastBookingForItem(ctx, item.ID, time.Now().UTC(), false)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestHasApprovedBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()

	ok, err := db.HasApprovedBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// WAITING does not count.
	createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusWaiting)
	ok, err = db.HasApprovedBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// An APPROVED booking starting in the future does not count either.
	createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusApproved)
	ok, err = db.HasApprovedBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	createTestBooking(t, db, item.ID, booker.ID, now.Add(-12*time.Hour), now.Add(-time.Hour), models.StatusApproved)
	ok, err = db.HasApprovedBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBookingListOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	past1 := createTestBooking(t, db, item.ID, booker.ID, now.Add(-96*time.Hour), now.Add(-72*time.Hour), models.StatusApproved)
	past2 := createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	cur1 := createTestBooking(t, db, item.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	cur2 := createTestBooking(t, db, item.ID, booker.ID, now.Add(-2*time.Hour), now.Add(2*time.Hour), models.StatusApproved)
	fut1 := createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	fut2 := createTestBooking(t, db, item.ID, booker.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), models.StatusWaiting)

	// PAST and FUTURE list id-descending.
	past, err := db.BookingsByBookerPast(ctx, booker.ID, now)
	require.NoError(t, err)
	require.Len(t, past, 2)
	assert.Equal(t, []int64{past2.ID, past1.ID}, []int64{past[0].ID, past[1].ID})

	future, err := db.BookingsByBookerFuture(ctx, booker.ID, now)
	require.NoError(t, err)
	require.Len(t, future, 2)
	assert.Equal(t, []int64{fut2.ID, fut1.ID}, []int64{future[0].ID, future[1].ID})

	// CURRENT lists id-ascending.
	current, err := db.BookingsByBookerCurrent(ctx, booker.ID, now)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, []int64{cur1.ID, cur2.ID}, []int64{current[0].ID, current[1].ID})

	// The owner sees the same bookings through the item join.
	all, err := db.BookingsByOwner(ctx, owner.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, fut2.ID, all[0].ID)
	assert.Equal(t, past1.ID, all[5].ID)
	assert.Equal(t, "Booker", all[0].Booker.Name)
	assert.Equal(t, "Drill", all[0].Item.Name)
}

func TestBookingListPagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		createTestBooking(t, db, item.ID, booker.ID,
			now.Add(time.Duration(i+1)*24*time.Hour),
			now.Add(time.Duration(i+2)*24*time.Hour),
			models.StatusWaiting)
	}

	page, err := db.BookingsByBooker(ctx, booker.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	next, err := db.BookingsByBooker(ctx, booker.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Less(t, next[0].ID, page[1].ID)
}

func TestBookingsByStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	rejected := createTestBooking(t, db, item.ID, booker.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), models.StatusRejected)

	views, err := db.BookingsByBookerStatus(ctx, booker.ID, models.StatusRejected)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, rejected.ID, views[0].ID)

	views, err = db.BookingsByOwnerStatus(ctx, owner.ID, models.StatusWaiting)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.StatusWaiting, views[0].Status)
}
