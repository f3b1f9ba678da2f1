package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"b2bees-backend/internal/domains/admin/model"
	"b2bees-backend/pkg/cache"
	"b2bees-backend/pkg/jwt"
)

type Service interface {
	Login(ctx context.Context, req model.LoginRequest, clientIP string) (*model.LoginResponse, error)
}

const adminSubject = "admin"

type authService struct {
	passwordHash []byte
	tokens       *jwt.Manager
	cache        cache.Cache
}

func NewAuthService(passwordHash string, tokens *jwt.Manager, cache cache.Cache) Service {
	return &authService{
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		cache:        cache,
	}
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest, clientIP string) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequest(err)
	}

	if locked, retryAfter := s.isLocked(ctx, clientIP); locked {
		return nil, model.NewTooManyAttempts(retryAfter)
	}

	if len(s.passwordHash) == 0 {
		return nil, model.NewLoginUnavailable()
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			// hash trong config hỏng
			log.Error().Err(err).Msg("ADMIN_PASSWORD_HASH is not a valid bcrypt hash")
			return nil, model.NewLoginUnavailable()
		}
		return nil, s.recordFailure(ctx, clientIP)
	}

	if err := s.cache.Delete(ctx, model.FailedAttemptsKey(clientIP)); err != nil {
		log.Warn().Err(err).Msg("Cannot reset failed login counter")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(adminSubject, jwt.RoleAdmin)
	if err != nil {
		return nil, model.NewTokenError(err)
	}

	log.Info().Str("ip", clientIP).Msg("🔐 Admin logged in")

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// isLocked fail-open khi cache lỗi
func (s *authService) isLocked(ctx context.Context, ip string) (bool, time.Duration) {
	key := model.LockKey(ip)

	locked, err := s.cache.Exists(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot check admin login lock")
		return false, 0
	}
	if !locked {
		return false, 0
	}

	ttl, err := s.cache.TTL(ctx, key)
	if err != nil || ttl <= 0 {
		return true, model.LockDuration
	}
	return true, ttl
}

func (s *authService) recordFailure(ctx context.Context, ip string) error {
	key := model.FailedAttemptsKey(ip)

	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot record failed admin login")
		return model.NewInvalidPassword()
	}
	if count == 1 {
		_ = s.cache.Expire(ctx, key, model.FailureWindow)
	}

	if count < model.MaxFailedAttempts {
		return model.NewInvalidPassword()
	}

	if err := s.cache.Set(ctx, model.LockKey(ip), count, model.LockDuration); err != nil {
		log.Warn().Err(err).Msg("Cannot lock admin login")
	}
	_ = s.cache.Delete(ctx, key)

	log.Warn().Str("ip", ip).Int64("attempts", count).Msg("🚫 Admin login locked")
	return model.NewTooManyAttempts(model.LockDuration)
}
