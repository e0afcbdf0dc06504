package services

import (
	"context"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for session token management.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a session JWT for the given user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken mints an opaque refresh secret for the given user.
	// Only its hash is ever persisted.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken validates a refresh token string against a
	// user's stored token details and returns the user if it is valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)

	// ValidateSessionToken validates a session JWT (signature, issuer, audience,
	// expiry; zero skew), resolves the subject against the user store and
	// returns a session principal. Tokens of deleted users fail even when
	// cryptographically valid.
	ValidateSessionToken(ctx context.Context, tokenString string) (*domain.Principal, error)
}

// LegacyKeySvc authenticates the legacy static API key credential.
type LegacyKeySvc interface {
	// AuthenticateKey hashes the opaque secret and resolves the owning user.
	// Any failure, whether a malformed secret, an unknown hash or a lookup
	// miss, is the uniform apperrors.ErrUnauthorized.
	AuthenticateKey(ctx context.Context, secret string) (*domain.Principal, error)
}

// AuthenticatorSvc is the per-request credential pipeline used by the
// authentication middleware: classify the bearer value, then run the
// applicable validators in their fixed precedence order.
type AuthenticatorSvc interface {
	// AuthenticateCredential resolves a raw bearer value into a Principal.
	// Returns apperrors.ErrUnauthorized when every applicable validator
	// rejects the credential; any other error is an internal fault.
	AuthenticateCredential(ctx context.Context, bearer string, clientIP string) (*domain.Principal, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google sign-in support.
// Only credential verification lives here; the consent screen itself happens on
// the Google/client side.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
