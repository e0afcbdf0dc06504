package domain

// Scope names form a fixed, enumerable vocabulary. The same constants are used
// by token issuance validation and by endpoint scope declarations; there is no
// dynamic scope registration.
const (
	ScopeReadRoutes      = "read:routes"
	ScopeWriteRoutes     = "write:routes"
	ScopeDeleteRoutes    = "delete:routes"
	ScopeReadLocations   = "read:locations"
	ScopeWriteLocations  = "write:locations"
	ScopeDeleteLocations = "delete:locations"
	ScopeReadDashboard   = "read:dashboard"
)

// AllScopes returns the full recognized scope vocabulary. This is also the
// permitted universe for token issuance: users may grant any recognized scope
// over their own data, never a scope that does not exist.
func AllScopes() []string {
	return []string{
		ScopeReadRoutes,
		ScopeWriteRoutes,
		ScopeDeleteRoutes,
		ScopeReadLocations,
		ScopeWriteLocations,
		ScopeDeleteLocations,
		ScopeReadDashboard,
	}
}

// IsRecognizedScope reports whether name is part of the scope vocabulary.
func IsRecognizedScope(name string) bool {
	for _, s := range AllScopes() {
		if s == name {
			return true
		}
	}
	return false
}
