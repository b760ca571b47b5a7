package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/fastygo/dashboard/domain"
)

// Claims is the signed payload of a bearer token. RegisteredClaims.ID carries the session id.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 bearer tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of every issued token.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for identity. An empty SessionID gets a fresh one.
func (m *Manager) Issue(identity domain.Identity) (string, time.Time, error) {
	if identity.UserID == "" {
		return "", time.Time{}, domain.ErrInvalidPayload
	}
	if identity.SessionID == "" {
		identity.SessionID = uuid.NewString()
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.SessionID,
			Issuer:    m.issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and issuer and returns the embedded identity.
func (m *Manager) Parse(tokenString string) (domain.Identity, error) {
	if tokenString == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.WrapError(domain.ErrCodeUnauthorized, domain.ErrUnauthorized.Message, err)
	}
	if m.issuer != "" && !claims.VerifyIssuer(m.issuer, true) {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if claims.UserID == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	return domain.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		SessionID: claims.ID,
	}, nil
}
