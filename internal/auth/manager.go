package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BloggingApp/web-client/internal/model"
	"github.com/BloggingApp/web-client/internal/repository"
	"github.com/BloggingApp/web-client/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID         int64        `json:"id"`
	Name           string       `json:"name"`
	ProfilePicture string       `json:"profile_picture"`
	Agent          *model.Agent `json:"agent,omitempty"`
}

// Manager is the process-wide owner of session tokens. Components never read
// the token store directly; they get a Provider bound to their session.
type Manager struct {
	logger *zap.Logger
	tokens repository.Token
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(logger *zap.Logger, tokens repository.Token, ttl time.Duration) *Manager {
	return &Manager{
		logger: logger,
		tokens: tokens,
		ttl:    ttl,
		now:    time.Now,
	}
}

// For binds the manager to one session.
func (m *Manager) For(sessionID string) Provider {
	return ProviderFunc(func(ctx context.Context) (Credentials, error) {
		return m.Credentials(ctx, sessionID)
	})
}

// Credentials returns anonymous credentials when the session holds no token.
// An expired token is dropped from the store and reported as ErrTokenExpired.
func (m *Manager) Credentials(ctx context.Context, sessionID string) (Credentials, error) {
	token, claims, err := m.load(ctx, sessionID)
	if err != nil || token == "" {
		return Credentials{}, err
	}

	creds := Credentials{Token: token}
	if claims.ExpiresAt != nil {
		creds.ExpiresAt = claims.ExpiresAt.Time
	}
	return creds, nil
}

// Identity returns the user and agent carried in the session token, or nils
// for an anonymous session.
func (m *Manager) Identity(ctx context.Context, sessionID string) (*model.User, *model.Agent, error) {
	token, claims, err := m.load(ctx, sessionID)
	if err != nil || token == "" {
		return nil, nil, err
	}

	user := &model.User{
		ID:             claims.UserID,
		Name:           claims.Name,
		ProfilePicture: claims.ProfilePicture,
	}
	return user, claims.Agent, nil
}

// Refresh stores a newly issued token for the session, replacing any prior one.
func (m *Manager) Refresh(ctx context.Context, sessionID string, token string) error {
	var claims tokenClaims
	if err := utils.DecodeJWTUnverified(token, &claims); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedToken, err.Error())
	}

	ttl := m.ttl
	if claims.ExpiresAt != nil {
		left := claims.ExpiresAt.Time.Sub(m.now())
		if left <= 0 {
			return ErrTokenExpired
		}
		if ttl <= 0 || left < ttl {
			ttl = left
		}
	}

	if err := m.tokens.Set(ctx, sessionID, token, ttl); err != nil {
		m.logger.Sugar().Errorf("failed to store token for session(%s): %s", sessionID, err.Error())
		return err
	}
	return nil
}

func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if err := m.tokens.Del(ctx, sessionID); err != nil {
		m.logger.Sugar().Errorf("failed to delete token for session(%s): %s", sessionID, err.Error())
		return err
	}
	return nil
}

func (m *Manager) load(ctx context.Context, sessionID string) (string, *tokenClaims, error) {
	token, err := m.tokens.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return "", nil, nil
	}
	if err != nil {
		m.logger.Sugar().Errorf("failed to read token for session(%s): %s", sessionID, err.Error())
		return "", nil, err
	}

	var claims tokenClaims
	if err := utils.DecodeJWTUnverified(token, &claims); err != nil {
		m.logger.Sugar().Warnf("dropping malformed token for session(%s): %s", sessionID, err.Error())
		_ = m.tokens.Del(ctx, sessionID)
		return "", nil, ErrMalformedToken
	}

	if claims.ExpiresAt != nil && !m.now().Before(claims.ExpiresAt.Time) {
		_ = m.tokens.Del(ctx, sessionID)
		return "", nil, ErrTokenExpired
	}

	return token, &claims, nil
}
