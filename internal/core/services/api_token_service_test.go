package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/core/services"
	"github.com/wayfare-app/wayfare_backend/internal/platform/config"
	"github.com/wayfare-app/wayfare_backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "session-test-secret",
		JWTIssuer:         "wayfare-test",
		JWTAudience:       "wayfare-app-test",
		JWTExpiryDuration: time.Hour,
		APITokenSecret:    "api-token-test-secret",
		APITokenAudience:  "wayfare-api-test",
	}
}

type APITokenServiceTestSuite struct {
	suite.Suite
	cfg           *config.Config
	mockTokenRepo *MockAPITokenRepository
	mockUserSvc   *MockUserSvc
	service       portssvc.APITokenSvc
}

func (suite *APITokenServiceTestSuite) SetupTest() {
	suite.cfg = testConfig()
	suite.mockTokenRepo = new(MockAPITokenRepository)
	suite.mockUserSvc = new(MockUserSvc)
	suite.service = services.NewAPITokenService(suite.cfg, suite.mockTokenRepo, suite.mockUserSvc)
}

// --- CreateToken Tests ---

func (suite *APITokenServiceTestSuite) TestCreateToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	scopes := []string{domain.ScopeReadRoutes, domain.ScopeWriteRoutes}

	suite.mockTokenRepo.On("CreateToken", ctx, mock.MatchedBy(func(token domain.APIToken) bool {
		return token.UserID == userID && len(token.Scopes) == 2 && !token.Revoked && token.TokenID != ""
	})).Return(nil).Once()

	issuance, err := suite.service.CreateToken(ctx, userID, "CI pipeline", scopes, 30, false)

	suite.Require().NoError(err)
	suite.Require().NotNil(issuance)
	suite.NotEmpty(issuance.AccessToken)
	suite.Empty(issuance.RefreshToken)
	suite.Equal(userID, issuance.Record.UserID)
	suite.Equal(scopes, issuance.Record.Scopes)

	// The minted JWT must parse back with the same token ID and scopes.
	claims, err := utils.ParseAndValidateAPITokenJWT(issuance.AccessToken, suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience)
	suite.Require().NoError(err)
	suite.Equal(issuance.Record.TokenID, claims.TokenID)
	suite.Equal(userID, claims.Subject)
	suite.Equal(scopes, claims.ScopeList())

	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestCreateToken_WithRefreshSecret() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenRepo.On("CreateToken", ctx, mock.MatchedBy(func(token domain.APIToken) bool {
		return token.RefreshTokenHash != nil
	})).Return(nil).Once()

	issuance, err := suite.service.CreateToken(ctx, userID, "with refresh", []string{domain.ScopeReadDashboard}, 0, true)

	suite.Require().NoError(err)
	suite.NotEmpty(issuance.RefreshToken)
	suite.Require().NotNil(issuance.Record.RefreshTokenHash)
	// Only the hash is persisted, never the raw secret.
	suite.NotEqual(issuance.RefreshToken, *issuance.Record.RefreshTokenHash)
	suite.Equal(utils.HashSecret(issuance.RefreshToken), *issuance.Record.RefreshTokenHash)

	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestCreateToken_DefaultExpiry() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenRepo.On("CreateToken", ctx, mock.AnythingOfType("domain.APIToken")).Return(nil).Once()

	issuance, err := suite.service.CreateToken(ctx, userID, "default expiry", []string{domain.ScopeReadRoutes}, 0, false)

	suite.Require().NoError(err)
	expected := time.Now().AddDate(0, 0, domain.DefaultAPITokenExpiryDays)
	suite.WithinDuration(expected, issuance.Record.ExpiresAt, time.Minute)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_DeduplicatesScopes() {
	ctx := context.Background()
	userID := uuid.NewString()
	scopes := []string{domain.ScopeReadRoutes, domain.ScopeReadRoutes, domain.ScopeReadDashboard}

	suite.mockTokenRepo.On("CreateToken", ctx, mock.AnythingOfType("domain.APIToken")).Return(nil).Once()

	issuance, err := suite.service.CreateToken(ctx, userID, "dup scopes", scopes, 10, false)

	suite.Require().NoError(err)
	suite.Equal([]string{domain.ScopeReadRoutes, domain.ScopeReadDashboard}, issuance.Record.Scopes)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_UnrecognizedScope() {
	ctx := context.Background()

	issuance, err := suite.service.CreateToken(ctx, uuid.NewString(), "bad scope", []string{"admin:everything"}, 10, false)

	suite.Require().Error(err)
	suite.Nil(issuance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Nothing may be persisted on a rejected request.
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "CreateToken", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_EmptyScopes() {
	ctx := context.Background()

	issuance, err := suite.service.CreateToken(ctx, uuid.NewString(), "no scopes", nil, 10, false)

	suite.Require().Error(err)
	suite.Nil(issuance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_ExpiryDaysOverCap() {
	ctx := context.Background()

	issuance, err := suite.service.CreateToken(ctx, uuid.NewString(), "too long", []string{domain.ScopeReadRoutes}, domain.MaxAPITokenExpiryDays+1, false)

	suite.Require().Error(err)
	suite.Nil(issuance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "CreateToken", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_NegativeExpiryDays() {
	ctx := context.Background()

	issuance, err := suite.service.CreateToken(ctx, uuid.NewString(), "negative", []string{domain.ScopeReadRoutes}, -1, false)

	suite.Require().Error(err)
	suite.Nil(issuance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_MissingDescription() {
	ctx := context.Background()

	issuance, err := suite.service.CreateToken(ctx, uuid.NewString(), "", []string{domain.ScopeReadRoutes}, 10, false)

	suite.Require().Error(err)
	suite.Nil(issuance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ValidateToken Tests ---

// issueValidToken mints a real signed JWT plus a matching registry record for
// validation tests.
func (suite *APITokenServiceTestSuite) issueValidToken(userID string, scopes []string) (string, *domain.APIToken) {
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(24 * time.Hour)
	tokenString, err := utils.GenerateAPITokenJWT(userID, tokenID, scopes, suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience, expiresAt)
	suite.Require().NoError(err)
	record := &domain.APIToken{
		TokenID:   tokenID,
		UserID:    userID,
		Scopes:    scopes,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return tokenString, record
}

func (suite *APITokenServiceTestSuite) TestValidateToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	scopes := []string{domain.ScopeReadRoutes, domain.ScopeReadDashboard}
	tokenString, record := suite.issueValidToken(userID, scopes)

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()
	suite.mockTokenRepo.On("RecordUsage", ctx, record.TokenID, mock.AnythingOfType("time.Time"), "10.0.0.1").Return(nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(&domain.User{UserID: userID, Name: "Owner"}, nil).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().NoError(err)
	suite.Require().NotNil(principal)
	suite.Equal(userID, principal.UserID)
	suite.Equal(domain.AuthMethodAPIToken, principal.Method)
	suite.Equal(scopes, principal.Scopes)
	suite.True(principal.IsScoped())

	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestValidateToken_WrongSecret() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenID := uuid.NewString()
	tokenString, err := utils.GenerateAPITokenJWT(userID, tokenID, []string{domain.ScopeReadRoutes}, "some-other-secret", suite.cfg.JWTIssuer, suite.cfg.APITokenAudience, time.Now().Add(time.Hour))
	suite.Require().NoError(err)

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	// The registry must never be consulted for a token that fails crypto.
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "FindTokenByID", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_RevokedDominatesValidJWT() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenString, record := suite.issueValidToken(userID, []string{domain.ScopeReadRoutes})
	record.Revoked = true

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "RecordUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_RegistryExpiryDominates() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenString, record := suite.issueValidToken(userID, []string{domain.ScopeReadRoutes})
	// JWT exp is still in the future; the registry record says otherwise.
	record.ExpiresAt = time.Now().Add(-time.Minute)

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_MissingRegistryRecord() {
	ctx := context.Background()
	tokenString, record := suite.issueValidToken(uuid.NewString(), []string{domain.ScopeReadRoutes})

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(nil, apperrors.ErrNotFound).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_OwnershipMismatch() {
	ctx := context.Background()
	tokenString, record := suite.issueValidToken(uuid.NewString(), []string{domain.ScopeReadRoutes})
	record.UserID = uuid.NewString() // registry disagrees with the JWT subject

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_UsageFailureDoesNotBlock() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenString, record := suite.issueValidToken(userID, []string{domain.ScopeReadRoutes})

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()
	suite.mockTokenRepo.On("RecordUsage", ctx, record.TokenID, mock.AnythingOfType("time.Time"), "10.0.0.1").Return(assert.AnError).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().NoError(err)
	suite.NotNil(principal)
}

// A token whose owner no longer resolves fails validation, and a failed
// validation must leave the usage counters untouched.
func (suite *APITokenServiceTestSuite) TestValidateToken_DeletedOwnerLeavesUsageUntouched() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenString, record := suite.issueValidToken(userID, []string{domain.ScopeReadRoutes})

	suite.mockTokenRepo.On("FindTokenByID", ctx, record.TokenID).Return(record, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	principal, err := suite.service.ValidateToken(ctx, tokenString, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "RecordUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_SessionJWTRejected() {
	ctx := context.Background()
	// A session token lacks the token_type/token_id/scopes claims entirely.
	sessionToken, err := utils.GenerateSessionJWT(uuid.NewString(), suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience, time.Hour)
	suite.Require().NoError(err)

	principal, err := suite.service.ValidateToken(ctx, sessionToken, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// countingTokenRepo is a concurrency-safe APITokenRepository stub whose
// RecordUsage mirrors the production UPDATE: one guarded increment per call.
type countingTokenRepo struct {
	mu         sync.Mutex
	record     domain.APIToken
	usageCount int64
}

func (r *countingTokenRepo) CreateToken(ctx context.Context, token domain.APIToken) error {
	return nil
}

func (r *countingTokenRepo) FindTokenByID(ctx context.Context, tokenID string) (*domain.APIToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tokenID != r.record.TokenID {
		return nil, apperrors.ErrNotFound
	}
	record := r.record
	return &record, nil
}

func (r *countingTokenRepo) FindTokensByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	return nil, nil
}

func (r *countingTokenRepo) MarkRevoked(ctx context.Context, tokenID string) error {
	return nil
}

func (r *countingTokenRepo) RecordUsage(ctx context.Context, tokenID string, usedAt time.Time, clientIP string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usageCount++
	return nil
}

// Concurrent validations of one token must account every successful call:
// the service funnels each success through the single usage-update operation,
// never a read-modify-write it could lose.
func (suite *APITokenServiceTestSuite) TestValidateToken_ConcurrentUsageAccounting() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(24 * time.Hour)
	tokenString, err := utils.GenerateAPITokenJWT(userID, tokenID, []string{domain.ScopeReadRoutes}, suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience, expiresAt)
	suite.Require().NoError(err)

	repo := &countingTokenRepo{record: domain.APIToken{
		TokenID:   tokenID,
		UserID:    userID,
		Scopes:    []string{domain.ScopeReadRoutes},
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}}
	suite.mockUserSvc.On("GetUserByID", mock.Anything, userID).Return(&domain.User{UserID: userID}, nil)

	service := services.NewAPITokenService(suite.cfg, repo, suite.mockUserSvc)

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.ValidateToken(ctx, tokenString, "10.0.0.1")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		suite.Require().NoError(errs[i])
	}
	suite.Equal(int64(callers), repo.usageCount)
}

// --- RevokeToken Tests ---

func (suite *APITokenServiceTestSuite) TestRevokeToken_Success() {
	ctx := context.Background()
	callerID := uuid.NewString()
	tokenID := uuid.NewString()
	record := &domain.APIToken{TokenID: tokenID, UserID: callerID, ExpiresAt: time.Now().Add(time.Hour)}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()
	suite.mockTokenRepo.On("MarkRevoked", ctx, tokenID).Return(nil).Once()

	err := suite.service.RevokeToken(ctx, callerID, tokenID)

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestRevokeToken_NotFound() {
	ctx := context.Background()
	tokenID := uuid.NewString()

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RevokeToken(ctx, uuid.NewString(), tokenID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *APITokenServiceTestSuite) TestRevokeToken_NotOwner() {
	ctx := context.Background()
	tokenID := uuid.NewString()
	record := &domain.APIToken{TokenID: tokenID, UserID: uuid.NewString(), ExpiresAt: time.Now().Add(time.Hour)}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()

	err := suite.service.RevokeToken(ctx, uuid.NewString(), tokenID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "MarkRevoked", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestRevokeToken_AlreadyRevokedIsIdempotent() {
	ctx := context.Background()
	callerID := uuid.NewString()
	tokenID := uuid.NewString()
	record := &domain.APIToken{TokenID: tokenID, UserID: callerID, Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()
	suite.mockTokenRepo.On("MarkRevoked", ctx, tokenID).Return(nil).Once()

	err := suite.service.RevokeToken(ctx, callerID, tokenID)

	suite.Require().NoError(err)
}

// --- RefreshAccessToken Tests ---

func (suite *APITokenServiceTestSuite) TestRefreshAccessToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenID := uuid.NewString()
	refreshSecret := "raw-refresh-secret"
	refreshHash := utils.HashSecret(refreshSecret)
	record := &domain.APIToken{
		TokenID:          tokenID,
		UserID:           userID,
		Scopes:           []string{domain.ScopeReadRoutes},
		ExpiresAt:        time.Now().Add(48 * time.Hour),
		RefreshTokenHash: &refreshHash,
	}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()

	accessToken, got, err := suite.service.RefreshAccessToken(ctx, tokenID, refreshSecret)

	suite.Require().NoError(err)
	suite.Equal(record, got)

	claims, err := utils.ParseAndValidateAPITokenJWT(accessToken, suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience)
	suite.Require().NoError(err)
	suite.Equal(tokenID, claims.TokenID)
	suite.Equal(userID, claims.Subject)
	suite.Equal(record.Scopes, claims.ScopeList())
}

func (suite *APITokenServiceTestSuite) TestRefreshAccessToken_WrongSecret() {
	ctx := context.Background()
	tokenID := uuid.NewString()
	refreshHash := utils.HashSecret("the-real-secret")
	record := &domain.APIToken{
		TokenID:          tokenID,
		UserID:           uuid.NewString(),
		Scopes:           []string{domain.ScopeReadRoutes},
		ExpiresAt:        time.Now().Add(time.Hour),
		RefreshTokenHash: &refreshHash,
	}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()

	accessToken, _, err := suite.service.RefreshAccessToken(ctx, tokenID, "not-the-secret")

	suite.Require().Error(err)
	suite.Empty(accessToken)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *APITokenServiceTestSuite) TestRefreshAccessToken_RevokedRecord() {
	ctx := context.Background()
	tokenID := uuid.NewString()
	refreshHash := utils.HashSecret("secret")
	record := &domain.APIToken{
		TokenID:          tokenID,
		UserID:           uuid.NewString(),
		Revoked:          true,
		ExpiresAt:        time.Now().Add(time.Hour),
		RefreshTokenHash: &refreshHash,
	}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()

	_, _, err := suite.service.RefreshAccessToken(ctx, tokenID, "secret")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *APITokenServiceTestSuite) TestRefreshAccessToken_NoRefreshSecretOnRecord() {
	ctx := context.Background()
	tokenID := uuid.NewString()
	record := &domain.APIToken{
		TokenID:   tokenID,
		UserID:    uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockTokenRepo.On("FindTokenByID", ctx, tokenID).Return(record, nil).Once()

	_, _, err := suite.service.RefreshAccessToken(ctx, tokenID, "anything")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAPITokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(APITokenServiceTestSuite))
}
