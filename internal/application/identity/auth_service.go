package identity

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication: login, logout and token refresh.
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	audit      audit.Sink
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	sink audit.Sink,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		audit:      sink,
		logger:     logger,
	}
}

// Login verifies credentials and issues a token pair. Failed logins return
// the same error regardless of whether the username exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalid := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, invalid
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, invalid
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	s.audit.Record(audit.NewLog(&user.ID, user.Username, user.Role.String(),
		"auth:login", "users", user.ID.String(), nil))

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserResponse(user),
	}, nil
}

// Logout revokes the presented access token by blacklisting its JTI for the
// remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return shared.ErrUnauthorized
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user's
// current role is read from the store so role changes apply on refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, shared.ErrUnauthorized
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, user.Role.String())
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserResponse(user),
	}, nil
}
