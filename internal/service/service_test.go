package service

import (
	"context"
	"os"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*database.DB, *zerolog.Logger) {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, &logger
}

func createTestUser(t *testing.T, db *database.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createTestItem(t *testing.T, db *database.DB, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func createTestBooking(t *testing.T, db *database.DB, itemID, bookerID int64, start, end time.Time, status string) *models.Booking {
	t.Helper()
	booking := &models.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), booking))
	return booking
}

// recordingBus captures published events for assertions.
type recordingBus struct {
	types []string
}

func (b *recordingBus) PublishJSON(eventType string, payload interface{}) error {
	b.types = append(b.types, eventType)
	return nil
}

func TestErrorHelpers(t *testing.T) {
	require.True(t, IsNotFound(NotFound("user %d not found", 7)))
	require.False(t, IsNotFound(Validation("bad input")))
	require.True(t, IsValidation(Validation("bad input")))
	require.False(t, IsValidation(NotFound("gone")))
	require.Equal(t, "user 7 not found", NotFound("user %d not found", 7).Error())
}
