package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/userhub/internal/user/usecase"
)

// AccessTokenClaims are the JWT claims carried by an access token.
type AccessTokenClaims struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTTokenProvider mints HS256-signed access tokens.
type JWTTokenProvider struct {
	signingKey []byte
	issuer     string
	audience   string
	expiresIn  time.Duration
	now        func() time.Time
}

// JWTOption customizes a JWTTokenProvider.
type JWTOption func(*JWTTokenProvider)

// WithJWTClock overrides the token clock.
func WithJWTClock(now func() time.Time) JWTOption {
	return func(p *JWTTokenProvider) { p.now = now }
}

// NewJWTTokenProvider creates a new JWTTokenProvider.
func NewJWTTokenProvider(signingKey, issuer, audience string, expiresIn time.Duration, opts ...JWTOption) *JWTTokenProvider {
	p := &JWTTokenProvider{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		expiresIn:  expiresIn,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create mints a signed token for the given user projection. The subject
// is the user id; user name and email travel as private claims.
func (p *JWTTokenProvider) Create(user usecase.UserModel) (string, error) {
	now := p.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		UserName: user.UserName,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    p.issuer,
			Audience:  []string{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiresIn)),
		},
	})

	signed, err := token.SignedString(p.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Parse validates a signed token and returns its claims. Expired or
// tampered tokens fail.
func (p *JWTTokenProvider) Parse(signed string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(signed, claims,
		func(token *jwt.Token) (any, error) {
			return p.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims, nil
}
