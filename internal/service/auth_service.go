package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/ethsig"
	"agent-payment-engine/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// LoginMaxDrift is how far a login timestamp may be from server time.
const LoginMaxDrift = 60 * time.Second

// AuthServiceImpl implements ports.AuthService with wallet sign-in.
type AuthServiceImpl struct {
	tokenSvc ports.TokenService
	nonces   ports.NonceStore
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(tokenSvc ports.TokenService, nonces ports.NonceStore, log zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		tokenSvc: tokenSvc,
		nonces:   nonces,
		log:      log,
		now:      time.Now,
	}
}

// LoginMessage is the text a wallet signs to sign in.
func LoginMessage(address string, timestamp int64) string {
	return fmt.Sprintf("agentpay-login|%s|%d", strings.ToLower(address), timestamp)
}

// Login verifies a personal signature over LoginMessage and returns a JWT.
// Each signed message can be used once.
func (s *AuthServiceImpl) Login(ctx context.Context, req ports.LoginRequest) (string, time.Time, error) {
	if !common.IsHexAddress(req.Address) {
		return "", time.Time{}, apperror.ErrInvalidAddress(req.Address)
	}

	drift := s.now().Sub(time.Unix(req.Timestamp, 0))
	if drift > LoginMaxDrift || drift < -LoginMaxDrift {
		return "", time.Time{}, apperror.ErrTimestampExpired()
	}

	signer, err := ethsig.Recover([]byte(LoginMessage(req.Address, req.Timestamp)), req.Signature)
	if err != nil || signer != common.HexToAddress(req.Address) {
		s.log.Info().Str("address", strings.ToLower(req.Address)).Msg("wallet login rejected")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	user := strings.ToLower(req.Address)
	fresh, err := s.nonces.CheckAndSet(ctx, "login:"+user, strconv.FormatInt(req.Timestamp, 10), 2*LoginMaxDrift)
	if err != nil {
		return "", time.Time{}, apperror.ErrStorage(fmt.Errorf("claim login nonce: %w", err))
	}
	if !fresh {
		return "", time.Time{}, apperror.ErrNonceUsed()
	}

	token, expiry, err := s.tokenSvc.Generate(user)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("user_id", user).Msg("wallet login")
	return token, expiry, nil
}
