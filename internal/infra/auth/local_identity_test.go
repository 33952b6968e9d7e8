package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"releaf/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAccountsFile(t *testing.T, accounts []Account) string {
	t.Helper()

	data, err := json.Marshal(accounts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestLocalIdentity_SignIn(t *testing.T) {
	hasher := NewBcryptHasher(4) // minimum cost keeps the test fast
	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	path := writeAccountsFile(t, []Account{
		{ID: "u-1", Email: "Ava@Example.com", Name: "Ava", PasswordHash: hash},
	})

	identity, err := NewLocalIdentity(path, hasher, newTestTokenService(t))
	require.NoError(t, err)

	ctx := context.Background()

	// Email lookup is case-insensitive.
	token, session, err := identity.SignIn(ctx, "ava@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, "Ava", session.Name)

	// Wrong password and unknown account fail identically.
	_, _, err = identity.SignIn(ctx, "ava@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrBadCredentials)

	_, _, err = identity.SignIn(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, service.ErrBadCredentials)
}

func TestNewLocalIdentity_MissingFile(t *testing.T) {
	_, err := NewLocalIdentity(filepath.Join(t.TempDir(), "absent.json"), NewBcryptHasher(4), newTestTokenService(t))
	assert.Error(t, err)
}
