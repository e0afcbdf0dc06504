package domain

// AuthMethod identifies which credential family authenticated a request.
// Modelling this as an explicit enum (rather than inferring from an empty scope
// list) keeps the "only API tokens are scope-constrained" rule visible at the
// type level when new methods get added.
type AuthMethod string

const (
	// AuthMethodBuiltIn is an identity established by the hosting framework
	// itself (e.g. an already-validated upstream session) before the custom
	// credential chain runs.
	AuthMethodBuiltIn AuthMethod = "built_in"
	// AuthMethodLegacyKey is the legacy static API key, matched by SHA-256 hash.
	AuthMethodLegacyKey AuthMethod = "legacy_key"
	// AuthMethodSessionToken is the short-lived interactive session JWT.
	AuthMethodSessionToken AuthMethod = "session_token"
	// AuthMethodAPIToken is the long-lived scoped API token backed by the registry.
	AuthMethodAPIToken AuthMethod = "api_token"
)

// Principal is the resolved identity attached to an authenticated request.
// It lives only for the duration of one request and is never persisted.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Method AuthMethod

	// Scopes granted to this principal. Empty for non-scoped auth methods,
	// which carry full owner authority (see middleware.RequireScopes).
	Scopes []string
}

// IsScoped reports whether this principal is constrained by scopes at all.
// Only API tokens are; every other method acts with full owner authority.
func (p *Principal) IsScoped() bool {
	return p.Method == AuthMethodAPIToken
}

// HasScope reports whether the principal was granted the named scope.
func (p *Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAnyScope reports whether the principal holds at least one of the given
// scopes (OR semantics, matching endpoint declarations).
func (p *Principal) HasAnyScope(scopes ...string) bool {
	for _, s := range scopes {
		if p.HasScope(s) {
			return true
		}
	}
	return false
}
