package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/core/services"
)

type AuthenticatorServiceTestSuite struct {
	suite.Suite
	mockTokenSvc     *MockTokenSvc
	mockAPITokenSvc  *MockAPITokenSvc
	mockLegacyKeySvc *MockLegacyKeySvc
	service          portssvc.AuthenticatorSvc
}

func (suite *AuthenticatorServiceTestSuite) SetupTest() {
	suite.mockTokenSvc = new(MockTokenSvc)
	suite.mockAPITokenSvc = new(MockAPITokenSvc)
	suite.mockLegacyKeySvc = new(MockLegacyKeySvc)
	suite.service = services.NewAuthenticatorService(suite.mockTokenSvc, suite.mockAPITokenSvc, suite.mockLegacyKeySvc)
}

func (suite *AuthenticatorServiceTestSuite) TestEmptyBearer() {
	principal, err := suite.service.AuthenticateCredential(context.Background(), "   ", "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockLegacyKeySvc.AssertNotCalled(suite.T(), "AuthenticateKey", mock.Anything, mock.Anything)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "ValidateSessionToken", mock.Anything, mock.Anything)
}

// Non-JWT-shaped values go to the legacy key validator, never to the JWT
// validators. A SHA-256 style hex key has no dots at all.
func (suite *AuthenticatorServiceTestSuite) TestOpaqueValueRoutesToLegacyKey() {
	ctx := context.Background()
	userID := uuid.NewString()
	key := "3f786850e387550fdab836ed7e6dc881de23001b"
	expected := &domain.Principal{UserID: userID, Method: domain.AuthMethodLegacyKey}

	suite.mockLegacyKeySvc.On("AuthenticateKey", ctx, key).Return(expected, nil).Once()

	principal, err := suite.service.AuthenticateCredential(ctx, key, "10.0.0.1")

	suite.Require().NoError(err)
	suite.Equal(expected, principal)
	suite.False(principal.IsScoped())
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "ValidateSessionToken", mock.Anything, mock.Anything)
	suite.mockAPITokenSvc.AssertNotCalled(suite.T(), "ValidateToken", mock.Anything, mock.Anything, mock.Anything)
}

// Shape classification is structural only: two dots with an empty segment is
// not a JWT, and a value with one or three dots-plus-extra is opaque.
func (suite *AuthenticatorServiceTestSuite) TestMalformedJWTShapesRouteToLegacyKey() {
	ctx := context.Background()
	cases := []string{
		"a.b",       // two segments
		"a.b.c.d",   // four segments
		"a..c",      // empty middle segment
		".b.c",      // empty first segment
		"a.b.",      // empty last segment
		"plain-key", // no dots
	}

	for _, bearer := range cases {
		suite.mockLegacyKeySvc.On("AuthenticateKey", ctx, bearer).Return(nil, apperrors.ErrUnauthorized).Once()

		principal, err := suite.service.AuthenticateCredential(ctx, bearer, "10.0.0.1")

		suite.Require().Error(err, "bearer %q", bearer)
		suite.Nil(principal)
		suite.ErrorIs(err, apperrors.ErrUnauthorized)
	}

	suite.mockTokenSvc.AssertNotCalled(suite.T(), "ValidateSessionToken", mock.Anything, mock.Anything)
	suite.mockAPITokenSvc.AssertNotCalled(suite.T(), "ValidateToken", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLegacyKeySvc.AssertExpectations(suite.T())
}

// A JWT-shaped value that the session validator accepts never reaches the API
// token validator.
func (suite *AuthenticatorServiceTestSuite) TestSessionTokenValidatedFirst() {
	ctx := context.Background()
	bearer := "header.payload.signature"
	expected := &domain.Principal{UserID: uuid.NewString(), Method: domain.AuthMethodSessionToken}

	suite.mockTokenSvc.On("ValidateSessionToken", ctx, bearer).Return(expected, nil).Once()

	principal, err := suite.service.AuthenticateCredential(ctx, bearer, "10.0.0.1")

	suite.Require().NoError(err)
	suite.Equal(expected, principal)
	suite.mockAPITokenSvc.AssertNotCalled(suite.T(), "ValidateToken", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLegacyKeySvc.AssertNotCalled(suite.T(), "AuthenticateKey", mock.Anything, mock.Anything)
}

// Session rejection falls through to the API token validator.
func (suite *AuthenticatorServiceTestSuite) TestAPITokenTriedAfterSessionRejects() {
	ctx := context.Background()
	bearer := "header.payload.signature"
	expected := &domain.Principal{
		UserID: uuid.NewString(),
		Method: domain.AuthMethodAPIToken,
		Scopes: []string{domain.ScopeReadRoutes},
	}

	suite.mockTokenSvc.On("ValidateSessionToken", ctx, bearer).Return(nil, apperrors.ErrUnauthorized).Once()
	suite.mockAPITokenSvc.On("ValidateToken", ctx, bearer, "10.0.0.1").Return(expected, nil).Once()

	principal, err := suite.service.AuthenticateCredential(ctx, bearer, "10.0.0.1")

	suite.Require().NoError(err)
	suite.Equal(expected, principal)
	suite.mockTokenSvc.AssertExpectations(suite.T())
	suite.mockAPITokenSvc.AssertExpectations(suite.T())
}

// When every applicable validator rejects, the caller sees one uniform error.
func (suite *AuthenticatorServiceTestSuite) TestBothJWTValidatorsReject() {
	ctx := context.Background()
	bearer := "header.payload.signature"

	suite.mockTokenSvc.On("ValidateSessionToken", ctx, bearer).Return(nil, apperrors.ErrUnauthorized).Once()
	suite.mockAPITokenSvc.On("ValidateToken", ctx, bearer, "10.0.0.1").Return(nil, apperrors.ErrUnauthorized).Once()

	principal, err := suite.service.AuthenticateCredential(ctx, bearer, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// Infrastructure faults from a validator propagate unchanged instead of being
// masked as a credential rejection.
func (suite *AuthenticatorServiceTestSuite) TestInternalFaultPropagates() {
	ctx := context.Background()
	bearer := "header.payload.signature"

	suite.mockTokenSvc.On("ValidateSessionToken", ctx, bearer).Return(nil, context.DeadlineExceeded).Once()

	principal, err := suite.service.AuthenticateCredential(ctx, bearer, "10.0.0.1")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, context.DeadlineExceeded)
	suite.mockAPITokenSvc.AssertNotCalled(suite.T(), "ValidateToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorServiceTestSuite))
}
