package database

import (
	"context"
	"testing"
	"time"

	"quotes-server/internal/auth"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, username, email string) int64 {
	t.Helper()

	hashedPassword, err := auth.HashPassword("secretpassword")
	require.NoError(t, err)

	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	require.NoError(t, err)
	return user.ID
}

func TestGetUserByUsername(t *testing.T) {
	createTestUser(t, "lookupuser", "lookup@example.com")

	foundUser, err := testStore.GetUserByUsername(context.Background(), "lookupuser")

	require.NoError(t, err)
	require.NotNil(t, foundUser)
	require.Equal(t, "lookupuser", foundUser.Username)
	require.Equal(t, "lookup@example.com", foundUser.Email)
	require.True(t, foundUser.IsActive)
	require.NotEmpty(t, foundUser.PasswordHash)

	nonExistentUser, err := testStore.GetUserByUsername(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.Nil(t, nonExistentUser)
}

func TestGetUserByEmail(t *testing.T) {
	createTestUser(t, "emailuser", "email@example.com")

	foundUser, err := testStore.GetUserByEmail(context.Background(), "email@example.com")
	require.NoError(t, err)
	require.NotNil(t, foundUser)
	require.Equal(t, "emailuser", foundUser.Username)

	missing, err := testStore.GetUserByEmail(context.Background(), "absent@example.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestCreateUserDuplicate(t *testing.T) {
	createTestUser(t, "dupeuser", "dupe@example.com")

	_, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     "dupeuser",
		Email:        "other@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     "otheruser",
		Email:        "dupe@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// The duplicate attempts must not have left partial rows behind.
	stillMissing, err := testStore.GetUserByUsername(context.Background(), "otheruser")
	require.NoError(t, err)
	require.Nil(t, stillMissing)
}

func TestUpdateUserPassword(t *testing.T) {
	userID := createTestUser(t, "pwuser", "pw@example.com")

	newHash, err := auth.HashPassword("newpassword123")
	require.NoError(t, err)

	err = testStore.UpdateUserPassword(context.Background(), userID, newHash)
	require.NoError(t, err)

	user, err := testStore.GetUserByUsername(context.Background(), "pwuser")
	require.NoError(t, err)
	require.Equal(t, newHash, user.PasswordHash)
}

func TestResetTokenLifecycle(t *testing.T) {
	userID := createTestUser(t, "resetuser", "reset@example.com")

	generateID, err := nanoid.Standard(40)
	require.NoError(t, err)
	token := generateID()

	err = testStore.CreateResetToken(context.Background(), CreateResetTokenParams{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	user, err := testStore.GetUserByResetToken(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "resetuser", user.Username)

	require.NoError(t, testStore.DeleteResetToken(context.Background(), token))

	user, err = testStore.GetUserByResetToken(context.Background(), token)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestResetTokenExpired(t *testing.T) {
	userID := createTestUser(t, "expireduser", "expired@example.com")

	generateID, err := nanoid.Standard(40)
	require.NoError(t, err)
	token := generateID()

	err = testStore.CreateResetToken(context.Background(), CreateResetTokenParams{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	user, err := testStore.GetUserByResetToken(context.Background(), token)
	require.NoError(t, err)
	require.Nil(t, user)
}
