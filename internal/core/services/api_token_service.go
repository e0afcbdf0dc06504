package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/platform/config"
	"github.com/wayfare-app/wayfare_backend/internal/utils"
)

// apiTokenService implements the APITokenSvc interface
type apiTokenService struct {
	BaseService
	cfg       *config.Config
	tokenRepo portsrepo.APITokenRepository
	userSvc   portssvc.UserSvcFacade
}

// NewAPITokenService creates a new instance of apiTokenService
func NewAPITokenService(cfg *config.Config, tokenRepo portsrepo.APITokenRepository, userSvc portssvc.UserSvcFacade) portssvc.APITokenSvc {
	return &apiTokenService{
		cfg:       cfg,
		tokenRepo: tokenRepo,
		userSvc:   userSvc,
	}
}

var _ portssvc.APITokenSvc = (*apiTokenService)(nil)

// CreateToken mints a signed API token and persists its registry record.
// Validation happens up front so a rejected request never leaves a partial
// record behind.
func (s *apiTokenService) CreateToken(ctx context.Context, userID, description string, scopes []string, expiryDays int, wantRefreshToken bool) (*portssvc.APITokenIssuance, error) {
	if userID == "" {
		return nil, apperrors.NewAppError(400, "user ID is required", apperrors.ErrValidation)
	}
	if description == "" {
		return nil, apperrors.NewAppError(400, "token description is required", apperrors.ErrValidation)
	}
	if len(scopes) == 0 {
		return nil, apperrors.NewAppError(400, "at least one scope is required", apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(scopes))
	granted := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if !domain.IsRecognizedScope(scope) {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("unrecognized scope: %s", scope), apperrors.ErrValidation)
		}
		if _, dup := seen[scope]; dup {
			continue
		}
		seen[scope] = struct{}{}
		granted = append(granted, scope)
	}
	if expiryDays < 0 || expiryDays > domain.MaxAPITokenExpiryDays {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("expiryDays must be between 1 and %d", domain.MaxAPITokenExpiryDays), apperrors.ErrValidation)
	}
	if expiryDays == 0 {
		expiryDays = domain.DefaultAPITokenExpiryDays
	}

	now := time.Now()
	tokenID := uuid.NewString()
	expiresAt := now.AddDate(0, 0, expiryDays)

	accessToken, err := utils.GenerateAPITokenJWT(userID, tokenID, granted, s.cfg.APITokenSecret, s.cfg.JWTIssuer, s.cfg.APITokenAudience, expiresAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign API token", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to sign API token: %w", err)
	}

	record := domain.APIToken{
		TokenID:     tokenID,
		UserID:      userID,
		Description: description,
		Scopes:      granted,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	var refreshToken string
	if wantRefreshToken {
		refreshToken, err = utils.GenerateSecureRandomString(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
		}
		refreshHash := utils.HashSecret(refreshToken)
		record.RefreshTokenHash = &refreshHash
	}

	if err := s.tokenRepo.CreateToken(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to persist API token record", slog.String("token_id", tokenID))
		return nil, fmt.Errorf("failed to persist API token record: %w", err)
	}

	s.LogInfo(ctx, "API token issued",
		slog.String("user_id", userID),
		slog.String("token_id", tokenID),
		slog.Int("scope_count", len(granted)),
		slog.Time("expires_at", expiresAt))

	return &portssvc.APITokenIssuance{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Record:       record,
	}, nil
}

// ListTokens returns registry metadata for all tokens owned by a user.
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	if userID == "" {
		return nil, apperrors.ErrValidation
	}

	tokens, err := s.tokenRepo.FindTokensByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list API tokens", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, nil
}

// RevokeToken terminally revokes a token owned by callerID. Revoking an
// already revoked token succeeds; the flag never moves back.
func (s *apiTokenService) RevokeToken(ctx context.Context, callerID, tokenID string) error {
	if callerID == "" || tokenID == "" {
		return apperrors.ErrValidation
	}

	token, err := s.tokenRepo.FindTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find API token for revocation", slog.String("token_id", tokenID))
		return fmt.Errorf("failed to find token: %w", err)
	}

	if token.UserID != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.tokenRepo.MarkRevoked(ctx, tokenID); err != nil {
		s.LogError(ctx, err, "Failed to revoke API token", slog.String("token_id", tokenID))
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.LogInfo(ctx, "API token revoked", slog.String("user_id", callerID), slog.String("token_id", tokenID))
	return nil
}

// ValidateToken authenticates an API token bearer value in two phases: first
// the JWT itself (signature, issuer, audience, expiry, typed claims), then the
// registry record it points at (existence, revocation, registry-side expiry).
// Either registry gate rejecting dominates a still-valid JWT. On success the
// usage counters are bumped before the principal is returned.
func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string, clientIP string) (*domain.Principal, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := utils.ParseAndValidateAPITokenJWT(tokenString, s.cfg.APITokenSecret, s.cfg.JWTIssuer, s.cfg.APITokenAudience)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	record, err := s.tokenRepo.FindTokenByID(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load API token registry record", slog.String("token_id", claims.TokenID))
		return nil, fmt.Errorf("failed to load token record: %w", err)
	}

	if record.Revoked || record.IsExpired() {
		return nil, apperrors.ErrUnauthorized
	}
	if record.UserID != claims.Subject {
		// Registry and JWT disagree on ownership; treat as a forged credential.
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userSvc.GetUserByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve token owner: %w", err)
	}

	// Usage is recorded only once every gate has passed; a rejected
	// validation must leave the counters untouched.
	if err := s.tokenRepo.RecordUsage(ctx, record.TokenID, time.Now(), clientIP); err != nil {
		// Usage accounting must not block an otherwise valid request.
		s.LogWarn(ctx, "Failed to record API token usage",
			slog.String("token_id", record.TokenID),
			slog.String("error", err.Error()))
	}

	// The principal's scopes come from the JWT claims; the registry stores the
	// same set but the signed copy is the authoritative grant.
	return &domain.Principal{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Method: domain.AuthMethodAPIToken,
		Scopes: claims.ScopeList(),
	}, nil
}

// RefreshAccessToken exchanges a previously issued refresh secret for a new
// access JWT bound to the same registry record. The record's scopes, expiry
// and revocation state all still apply; a revoked or expired record cannot be
// refreshed back to life.
func (s *apiTokenService) RefreshAccessToken(ctx context.Context, tokenID, refreshSecret string) (string, *domain.APIToken, error) {
	if tokenID == "" || refreshSecret == "" {
		return "", nil, apperrors.ErrUnauthorized
	}

	record, err := s.tokenRepo.FindTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load API token record for refresh", slog.String("token_id", tokenID))
		return "", nil, fmt.Errorf("failed to load token record: %w", err)
	}

	if record.Revoked || record.IsExpired() {
		return "", nil, apperrors.ErrUnauthorized
	}
	if record.RefreshTokenHash == nil || !utils.CompareSecretHash(refreshSecret, *record.RefreshTokenHash) {
		return "", nil, apperrors.ErrUnauthorized
	}

	accessToken, err := utils.GenerateAPITokenJWT(record.UserID, record.TokenID, record.Scopes, s.cfg.APITokenSecret, s.cfg.JWTIssuer, s.cfg.APITokenAudience, record.ExpiresAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refreshed API token", slog.String("token_id", tokenID))
		return "", nil, fmt.Errorf("failed to sign refreshed API token: %w", err)
	}

	s.LogInfo(ctx, "API token refreshed", slog.String("token_id", tokenID))
	return accessToken, record, nil
}
