package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")

	err := db.CreateUser(ctx, &models.User{Name: "Other Alice", Email: "alice@example.com"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUser(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserPartialPatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")

	name := "Alicia"
	updated, err := db.UpdateUser(ctx, user.ID, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "alicia@example.com"
	updated, err = db.UpdateUser(ctx, user.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	email := "alice@example.com"
	_, err := db.UpdateUser(ctx, bob.ID, models.UserPatch{Email: &email})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	require.NoError(t, db.DeleteUser(ctx, user.ID))

	_, err := db.GetUser(ctx, user.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Delete is unconditional, a second call is a no-op.
	require.NoError(t, db.DeleteUser(ctx, user.ID))
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")
	createTestUser(t, db, "Bob", "bob@example.com")

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestEmailExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")

	exists, err := db.EmailExists(ctx, "alice@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// The user's own row does not count against them.
	exists, err = db.EmailExists(ctx, "alice@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
