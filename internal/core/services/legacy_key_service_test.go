package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/core/services"
	"github.com/wayfare-app/wayfare_backend/internal/utils"
)

type LegacyKeyServiceTestSuite struct {
	suite.Suite
	mockKeyRepo *MockLegacyKeyRepository
	mockUserSvc *MockUserSvc
	service     portssvc.LegacyKeySvc
}

func (suite *LegacyKeyServiceTestSuite) SetupTest() {
	suite.mockKeyRepo = new(MockLegacyKeyRepository)
	suite.mockUserSvc = new(MockUserSvc)
	suite.service = services.NewLegacyKeyService(suite.mockKeyRepo, suite.mockUserSvc)
}

func (suite *LegacyKeyServiceTestSuite) TestAuthenticateKey_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawKey := "legacy-key-raw-value"
	keyRecord := &domain.LegacyAPIKey{UserID: userID, KeyHash: utils.HashSecret(rawKey), CreatedAt: time.Now()}

	// Lookup happens by SHA-256 hex digest, never by the raw key.
	suite.mockKeyRepo.On("FindByKeyHash", ctx, utils.HashSecret(rawKey)).Return(keyRecord, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(&domain.User{UserID: userID, Name: "Key Owner"}, nil).Once()

	principal, err := suite.service.AuthenticateKey(ctx, rawKey)

	suite.Require().NoError(err)
	suite.Require().NotNil(principal)
	suite.Equal(userID, principal.UserID)
	suite.Equal(domain.AuthMethodLegacyKey, principal.Method)
	suite.Empty(principal.Scopes)
	suite.False(principal.IsScoped())

	suite.mockKeyRepo.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *LegacyKeyServiceTestSuite) TestAuthenticateKey_UnknownKey() {
	ctx := context.Background()
	rawKey := "unknown-key"

	suite.mockKeyRepo.On("FindByKeyHash", ctx, utils.HashSecret(rawKey)).Return(nil, apperrors.ErrNotFound).Once()

	principal, err := suite.service.AuthenticateKey(ctx, rawKey)

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *LegacyKeyServiceTestSuite) TestAuthenticateKey_EmptySecret() {
	principal, err := suite.service.AuthenticateKey(context.Background(), "")

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockKeyRepo.AssertNotCalled(suite.T(), "FindByKeyHash", mock.Anything, mock.Anything)
}

func (suite *LegacyKeyServiceTestSuite) TestAuthenticateKey_DeletedOwner() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawKey := "orphaned-key"
	keyRecord := &domain.LegacyAPIKey{UserID: userID, KeyHash: utils.HashSecret(rawKey)}

	suite.mockKeyRepo.On("FindByKeyHash", ctx, utils.HashSecret(rawKey)).Return(keyRecord, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	principal, err := suite.service.AuthenticateKey(ctx, rawKey)

	suite.Require().Error(err)
	suite.Nil(principal)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestLegacyKeyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LegacyKeyServiceTestSuite))
}
