package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/password"
	"github.com/fastygo/dashboard/pkg/token"
	"github.com/fastygo/dashboard/repository"
	"github.com/fastygo/dashboard/repository/memory"
)

func newAuth(t *testing.T, withSessions bool) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	var sessions repository.SessionRepository
	if withSessions {
		sessions = store.Sessions()
	}
	tokens := token.NewManager("test-secret", "dashboard", time.Hour)
	return New(store.Users(), sessions, password.NewHasher(4), tokens, nil), store
}

var ada = domain.Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1"}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	uc, _ := newAuth(t, true)
	ctx := context.Background()

	result, err := uc.Register(ctx, ada)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.NotEqual(t, "secret1", result.User.PasswordHash)

	identity, err := uc.Verify(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, identity.UserID)
	assert.NotEmpty(t, identity.SessionID)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	uc, _ := newAuth(t, false)
	ctx := context.Background()

	_, err := uc.Register(ctx, ada)
	require.NoError(t, err)

	_, err = uc.Register(ctx, domain.Registration{Name: "Other", Email: ada.Email, Password: "another1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, _ := newAuth(t, false)
	ctx := context.Background()

	_, err := uc.Register(ctx, ada)
	require.NoError(t, err)

	_, wrongPassword := uc.Login(ctx, domain.Credentials{Email: ada.Email, Password: "wrong-pass"})
	_, unknownEmail := uc.Login(ctx, domain.Credentials{Email: "nobody@example.com", Password: "secret1"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.True(t, domain.IsDomainError(wrongPassword, domain.ErrCodeUnauthorized))

	result, err := uc.Login(ctx, domain.Credentials{Email: ada.Email, Password: ada.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	uc, _ := newAuth(t, false)
	ctx := context.Background()

	_, err := uc.Verify(ctx, "not-a-token")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	other := token.NewManager("other-secret", "dashboard", time.Hour)
	forged, _, err := other.Issue(domain.Identity{UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.Verify(ctx, forged)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	// Expiry is stored with second precision, so a 1ns lifetime is already past.
	expiredManager := token.NewManager("test-secret", "dashboard", time.Nanosecond)
	expired, _, err := expiredManager.Issue(domain.Identity{UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.Verify(ctx, expired)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, _ := newAuth(t, true)
	ctx := context.Background()

	result, err := uc.Register(ctx, ada)
	require.NoError(t, err)
	identity, err := uc.Verify(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, *identity))

	_, err = uc.Verify(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Refresh(ctx, *identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshKeepsSession(t *testing.T) {
	uc, _ := newAuth(t, true)
	ctx := context.Background()

	result, err := uc.Register(ctx, ada)
	require.NoError(t, err)
	identity, err := uc.Verify(ctx, result.Token)
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, *identity)
	require.NoError(t, err)

	again, err := uc.Verify(ctx, refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.SessionID, again.SessionID)
	assert.Equal(t, identity.UserID, again.UserID)
}

func TestRefreshForDeletedUserIsUnauthorized(t *testing.T) {
	uc, store := newAuth(t, false)
	ctx := context.Background()

	result, err := uc.Register(ctx, ada)
	require.NoError(t, err)
	store.DeleteUser(result.User.ID)

	// The token itself stays valid; only flows that re-read the account notice.
	identity, err := uc.Verify(ctx, result.Token)
	require.NoError(t, err)
	_, err = uc.Refresh(ctx, *identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
