package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/core/services"
	"github.com/wayfare-app/wayfare_backend/internal/platform/config"
	"github.com/wayfare-app/wayfare_backend/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg         *config.Config
	mockUserSvc *MockUserSvc
	service     portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = testConfig()
	suite.cfg.RefreshTokenExpiryDuration = 168 * time.Hour
	suite.mockUserSvc = new(MockUserSvc)
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserSvc)
}

func (suite *TokenServiceTestSuite) TestGenerateAndValidateSessionToken() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Name: "Session User", Email: "session@example.com"}

	tokenString, expiry, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)
	suite.NotEmpty(tokenString)
	suite.WithinDuration(time.Now().Add(suite.cfg.JWTExpiryDuration), expiry, time.Minute)

	suite.mockUserSvc.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	principal, err := suite.service.ValidateSessionToken(ctx, tokenString)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, principal.UserID)
	suite.Equal(domain.AuthMethodSessionToken, principal.Method)
	suite.Empty(principal.Scopes)
	suite.False(principal.IsScoped())
}

func (suite *TokenServiceTestSuite) TestValidateSessionToken_WrongSecret() {
	ctx := context.Background()
	tokenString, err := utils.GenerateSessionJWT(uuid.NewString(), "some-other-secret", suite.cfg.JWTIssuer, suite.cfg.JWTAudience, time.Hour)
	suite.Require().NoError(err)

	principal, err := suite.service.ValidateSessionToken(ctx, tokenString)

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// An API token is signed with a different secret, so it must fail the session
// validator even though it has the same wire shape.
func (suite *TokenServiceTestSuite) TestValidateSessionToken_RejectsAPIToken() {
	ctx := context.Background()
	tokenString, err := utils.GenerateAPITokenJWT(uuid.NewString(), uuid.NewString(), []string{domain.ScopeReadRoutes}, suite.cfg.APITokenSecret, suite.cfg.JWTIssuer, suite.cfg.APITokenAudience, time.Now().Add(time.Hour))
	suite.Require().NoError(err)

	principal, err := suite.service.ValidateSessionToken(ctx, tokenString)

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// A cryptographically valid token for a deleted subject fails closed.
func (suite *TokenServiceTestSuite) TestValidateSessionToken_DeletedSubject() {
	ctx := context.Background()
	userID := uuid.NewString()
	tokenString, err := utils.GenerateSessionJWT(userID, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, suite.cfg.JWTAudience, time.Hour)
	suite.Require().NoError(err)

	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	principal, err := suite.service.ValidateSessionToken(ctx, tokenString)

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawRefresh := "raw-refresh-secret"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashSecret(rawRefresh),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, rawRefresh)

	suite.Require().NoError(err)
	suite.Equal(user, got)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Expired() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawRefresh := "raw-refresh-secret"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashSecret(rawRefresh),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, rawRefresh)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Mismatch() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashSecret("the-real-secret"),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "not-the-secret")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_NoStoredToken() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
