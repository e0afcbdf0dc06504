package services

import (
	"context"
	"errors"
	"strings"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
)

// authenticatorService implements the AuthenticatorSvc interface. It is the
// per-request credential pipeline: classify the bearer value by shape, then
// run the applicable validators in a fixed precedence order.
type authenticatorService struct {
	BaseService
	tokenSvc     portssvc.TokenSvcFacade
	apiTokenSvc  portssvc.APITokenSvc
	legacyKeySvc portssvc.LegacyKeySvc
}

// NewAuthenticatorService creates a new instance of authenticatorService
func NewAuthenticatorService(tokenSvc portssvc.TokenSvcFacade, apiTokenSvc portssvc.APITokenSvc, legacyKeySvc portssvc.LegacyKeySvc) portssvc.AuthenticatorSvc {
	return &authenticatorService{
		tokenSvc:     tokenSvc,
		apiTokenSvc:  apiTokenSvc,
		legacyKeySvc: legacyKeySvc,
	}
}

var _ portssvc.AuthenticatorSvc = (*authenticatorService)(nil)

// isJWTShaped reports whether the bearer value has the structural form of a
// JWS compact serialization: exactly three non-empty dot-separated segments.
// Classification looks at shape only, never at the segment contents.
func isJWTShaped(bearer string) bool {
	parts := strings.Split(bearer, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// AuthenticateCredential resolves a raw bearer value into a Principal.
//
// JWT-shaped values are tried as a session token first and as an API token
// second; the two families are signed with different secrets so at most one
// validator accepts any given token. Everything else is treated as an opaque
// legacy key. When every applicable validator rejects the credential the
// result is the uniform apperrors.ErrUnauthorized; the caller decides whether
// that means 401 or an anonymous request.
func (s *authenticatorService) AuthenticateCredential(ctx context.Context, bearer string, clientIP string) (*domain.Principal, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if !isJWTShaped(bearer) {
		return s.legacyKeySvc.AuthenticateKey(ctx, bearer)
	}

	principal, err := s.tokenSvc.ValidateSessionToken(ctx, bearer)
	if err == nil {
		return principal, nil
	}
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		return nil, err
	}

	return s.apiTokenSvc.ValidateToken(ctx, bearer, clientIP)
}
