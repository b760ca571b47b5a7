package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/logger"
	"github.com/fastygo/dashboard/repository"
)

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
	CompareDummy(plain string)
}

// TokenManager is satisfied by *token.Manager.
type TokenManager interface {
	Issue(identity domain.Identity) (string, time.Time, error)
	Parse(token string) (domain.Identity, error)
	TTL() time.Duration
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   PasswordHasher
	tokens   TokenManager
	logger   *zap.Logger
}

// New wires the authentication service. sessions may be nil, in which case tokens
// are trusted on signature alone and cannot be revoked.
func New(users repository.UserRepository, sessions repository.SessionRepository, hasher PasswordHasher, tokens TokenManager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *UseCase) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.users.GetByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	// A concurrent registration can still win the race; Create reports ErrEmailTaken then.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.WithRequestID(ctx, uc.logger).Info("user registered", zap.String("user_id", user.ID))
	return uc.issue(ctx, user)
}

// Login answers unknown emails and wrong passwords with the same error.
func (uc *UseCase) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.hasher.CompareDummy(creds.Password)
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if !uc.hasher.Compare(user.PasswordHash, creds.Password) {
		return nil, domain.ErrBadCredentials
	}
	return uc.issue(ctx, user)
}

// Verify resolves a bearer token into the caller identity. The user row is not
// re-read; a revoked session is rejected when a session store is configured.
func (uc *UseCase) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if uc.sessions != nil && identity.SessionID != "" {
		if _, err := uc.sessions.Get(ctx, identity.SessionID); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, err
		}
	}
	return &identity, nil
}

// Refresh extends the caller's session and returns a token with a new expiry.
func (uc *UseCase) Refresh(ctx context.Context, identity domain.Identity) (*domain.AuthResult, error) {
	user, err := uc.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if uc.sessions != nil && identity.SessionID != "" {
		if err := uc.sessions.Extend(ctx, identity.SessionID, int(uc.tokens.TTL().Seconds())); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, err
		}
	}

	token, _, err := uc.tokens.Issue(domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: identity.SessionID,
	})
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}

// Logout revokes the caller's session. Without a session store it is a no-op.
func (uc *UseCase) Logout(ctx context.Context, identity domain.Identity) error {
	if uc.sessions == nil || identity.SessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, identity.SessionID)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	identity := domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: uuid.NewString(),
	}

	token, expiresAt, err := uc.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	if uc.sessions != nil {
		session := &domain.Session{
			ID:        identity.SessionID,
			UserID:    user.ID,
			CreatedAt: time.Now(),
			ExpiresAt: expiresAt,
		}
		if err := uc.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}
