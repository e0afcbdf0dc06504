package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APITokenType is the token_type discriminator embedded in API token JWTs.
// Session JWTs carry no discriminator; see the validators for how the two
// families are told apart.
const APITokenType = "api_token"

// APITokenClaims is the typed claim payload of a scoped API token. Explicit
// fields (rather than an untyped claim map) give compile-time guarantees over
// claim presence.
type APITokenClaims struct {
	// TokenID is the registry lookup key for the persisted token record.
	TokenID string `json:"token_id"`
	// Scopes is the space-joined list of granted scope names.
	Scopes string `json:"scopes"`
	// TokenType discriminates API tokens from session tokens sharing the wire format.
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// ScopeList splits the space-joined scopes claim into a slice.
func (c *APITokenClaims) ScopeList() []string {
	return strings.Fields(c.Scopes)
}

// GenerateSessionJWT mints a short-lived interactive session token.
func GenerateSessionJWT(userID, secret, issuer, audience string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAPITokenJWT mints a long-lived scoped API token embedding the
// registry token ID and the granted scopes.
func GenerateAPITokenJWT(userID, tokenID string, scopes []string, secret, issuer, audience string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := APITokenClaims{
		TokenID:   tokenID,
		Scopes:    strings.Join(scopes, " "),
		TokenType: APITokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// hmacKeyFunc rejects any signing method other than HMAC before handing back the key.
func hmacKeyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}

// ParseAndValidateSessionJWT validates a session token's signature, issuer,
// audience and expiry (zero clock-skew tolerance) and returns its claims.
func ParseAndValidateSessionJWT(tokenString, secret, issuer, audience string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKeyFunc(secret),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// ParseAndValidateAPITokenJWT performs the cryptographic/structural phase of
// API token validation: signature, issuer, audience, expiry (zero skew) plus
// presence of the token_type discriminator, token ID and scopes claims. The
// registry phase happens in the API token service.
func ParseAndValidateAPITokenJWT(tokenString, secret, issuer, audience string) (*APITokenClaims, error) {
	claims := &APITokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKeyFunc(secret),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.TokenType != APITokenType {
		return nil, errors.New("missing or unexpected token_type claim")
	}
	if claims.TokenID == "" {
		return nil, errors.New("missing token_id claim")
	}
	if claims.Scopes == "" {
		return nil, errors.New("missing scopes claim")
	}
	return claims, nil
}
