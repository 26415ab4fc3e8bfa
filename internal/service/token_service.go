package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"agent-payment-engine/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionAudience scopes tokens to the payment API.
const sessionAudience = "agent-payments"

var errBadSubject = errors.New("subject is not a wallet address")

// walletClaims are the claims of a wallet session token. Subject is the
// lower-cased wallet address that signed in.
type walletClaims struct {
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService with HS256 wallet session tokens.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate issues a session token for a wallet address.
func (s *JWTTokenService) Generate(userID string) (string, time.Time, error) {
	if !common.IsHexAddress(userID) {
		return "", time.Time{}, fmt.Errorf("generate token: %w", errBadSubject)
	}
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := walletClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strings.ToLower(userID),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{sessionAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate checks signature, issuer, audience and expiry, and returns the wallet address.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims walletClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !common.IsHexAddress(claims.Subject) {
		return nil, fmt.Errorf("parsing token: %w", errBadSubject)
	}
	return &ports.TokenClaims{UserID: strings.ToLower(claims.Subject)}, nil
}
