package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"adsbuilder/internal/domain/user"
	"adsbuilder/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func createTestUser(t *testing.T, db *database.DB, email string) *user.User {
	t.Helper()
	u := &user.User{Email: email, Username: email, Password: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}
