package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vedran77/messagely/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the session fact set bound into a token.
type Claims struct {
	Username       string
	LoginTimestamp time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username       string    `json:"username"`
	LoginTimestamp time.Time `json:"login_timestamp"`
}

// TokenManager issues and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager fails with domain.ErrConfiguration when secret is empty.
// A zero ttl issues tokens without an exp claim.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is empty", domain.ErrConfiguration)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("%w: negative token ttl", domain.ErrConfiguration)
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs c into an opaque token string.
func (m *TokenManager) Issue(c Claims) (string, error) {
	now := m.now()
	registered := jwt.RegisteredClaims{
		Issuer:   m.issuer,
		Subject:  c.Username,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.ttl > 0 {
		registered.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: registered,
		Username:         c.Username,
		LoginTimestamp:   c.LoginTimestamp,
	})
	return token.SignedString(m.secret)
}

// Parse verifies the signature, issuer and expiry of tokenString and
// returns the claims it carries.
func (m *TokenManager) Parse(tokenString string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !token.Valid || tc.Username == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Username: tc.Username, LoginTimestamp: tc.LoginTimestamp}, nil
}
