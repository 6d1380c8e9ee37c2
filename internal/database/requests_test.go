package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRequest(t *testing.T, db *DB, requestorID int64, description string, created time.Time) *models.ItemRequest {
	t.Helper()
	request := &models.ItemRequest{Description: description, RequestorID: requestorID, Created: created}
	require.NoError(t, db.CreateRequest(context.Background(), request))
	return request
}

func TestGetRequestNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRequest(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRequestsByRequestorOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	now := time.Now().UTC()
	old := createTestRequest(t, db, user.ID, "need a drill", now.Add(-48*time.Hour))
	recent := createTestRequest(t, db, user.ID, "need a ladder", now.Add(-time.Hour))

	requests, err := db.RequestsByRequestor(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, recent.ID, requests[0].ID)
	assert.Equal(t, old.ID, requests[1].ID)
}

func TestRequestsByOthers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	now := time.Now().UTC()
	createTestRequest(t, db, alice.ID, "need a drill", now)
	bobs := createTestRequest(t, db, bob.ID, "need a saw", now)

	requests, err := db.RequestsByOthers(ctx, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, bobs.ID, requests[0].ID)

	// Limited listing.
	createTestRequest(t, db, bob.ID, "need a ladder", now.Add(time.Hour))
	requests, err = db.RequestsByOthers(ctx, alice.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "need a ladder", requests[0].Description)
}

func TestCommentsByItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Commenter", "commenter@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC()
	first := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "great drill", Created: now.Add(-time.Hour)}
	require.NoError(t, db.CreateComment(ctx, first))
	second := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "still great", Created: now}
	require.NoError(t, db.CreateComment(ctx, second))

	comments, err := db.CommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "great drill", comments[0].Text)
	assert.Equal(t, "Commenter", comments[0].AuthorName)
	assert.Equal(t, "still great", comments[1].Text)
}
