package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock APITokenRepository ---

type MockAPITokenRepository struct {
	mock.Mock
}

func (m *MockAPITokenRepository) CreateToken(ctx context.Context, token domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) FindTokenByID(ctx context.Context, tokenID string) (*domain.APIToken, error) {
	args := m.Called(ctx, tokenID)
	var token *domain.APIToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.APIToken)
	}
	return token, args.Error(1)
}

func (m *MockAPITokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	var tokens []domain.APIToken
	if args.Get(0) != nil {
		tokens = args.Get(0).([]domain.APIToken)
	}
	return tokens, args.Error(1)
}

func (m *MockAPITokenRepository) MarkRevoked(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockAPITokenRepository) RecordUsage(ctx context.Context, tokenID string, usedAt time.Time, clientIP string) error {
	args := m.Called(ctx, tokenID, usedAt, clientIP)
	return args.Error(0)
}

// --- Mock LegacyKeyRepository ---

type MockLegacyKeyRepository struct {
	mock.Mock
}

func (m *MockLegacyKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*domain.LegacyAPIKey, error) {
	args := m.Called(ctx, keyHash)
	var key *domain.LegacyAPIKey
	if args.Get(0) != nil {
		key = args.Get(0).(*domain.LegacyAPIKey)
	}
	return key, args.Error(1)
}

func (m *MockLegacyKeyRepository) InsertKey(ctx context.Context, key domain.LegacyAPIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// --- Mock UserSvcFacade ---

type MockUserSvc struct {
	mock.Mock
}

func (m *MockUserSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserSvc) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) FindOrCreateFederatedUser(ctx context.Context, provider, providerUserID, email, name string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID, email, name)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserSvc) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserSvc) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}

func (m *MockUserSvc) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserSvc)(nil)

// --- Mock TokenSvcFacade ---

type MockTokenSvc struct {
	mock.Mock
}

func (m *MockTokenSvc) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenSvc) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenSvc) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockTokenSvc) ValidateSessionToken(ctx context.Context, tokenString string) (*domain.Principal, error) {
	args := m.Called(ctx, tokenString)
	var principal *domain.Principal
	if args.Get(0) != nil {
		principal = args.Get(0).(*domain.Principal)
	}
	return principal, args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenSvc)(nil)

// --- Mock APITokenSvc ---

type MockAPITokenSvc struct {
	mock.Mock
}

func (m *MockAPITokenSvc) CreateToken(ctx context.Context, userID, description string, scopes []string, expiryDays int, wantRefreshToken bool) (*portssvc.APITokenIssuance, error) {
	args := m.Called(ctx, userID, description, scopes, expiryDays, wantRefreshToken)
	var issuance *portssvc.APITokenIssuance
	if args.Get(0) != nil {
		issuance = args.Get(0).(*portssvc.APITokenIssuance)
	}
	return issuance, args.Error(1)
}

func (m *MockAPITokenSvc) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	var tokens []domain.APIToken
	if args.Get(0) != nil {
		tokens = args.Get(0).([]domain.APIToken)
	}
	return tokens, args.Error(1)
}

func (m *MockAPITokenSvc) RevokeToken(ctx context.Context, callerID, tokenID string) error {
	args := m.Called(ctx, callerID, tokenID)
	return args.Error(0)
}

func (m *MockAPITokenSvc) ValidateToken(ctx context.Context, tokenString string, clientIP string) (*domain.Principal, error) {
	args := m.Called(ctx, tokenString, clientIP)
	var principal *domain.Principal
	if args.Get(0) != nil {
		principal = args.Get(0).(*domain.Principal)
	}
	return principal, args.Error(1)
}

func (m *MockAPITokenSvc) RefreshAccessToken(ctx context.Context, tokenID, refreshSecret string) (string, *domain.APIToken, error) {
	args := m.Called(ctx, tokenID, refreshSecret)
	var record *domain.APIToken
	if args.Get(1) != nil {
		record = args.Get(1).(*domain.APIToken)
	}
	return args.String(0), record, args.Error(2)
}

var _ portssvc.APITokenSvc = (*MockAPITokenSvc)(nil)

// --- Mock LegacyKeySvc ---

type MockLegacyKeySvc struct {
	mock.Mock
}

func (m *MockLegacyKeySvc) AuthenticateKey(ctx context.Context, secret string) (*domain.Principal, error) {
	args := m.Called(ctx, secret)
	var principal *domain.Principal
	if args.Get(0) != nil {
		principal = args.Get(0).(*domain.Principal)
	}
	return principal, args.Error(1)
}

var _ portssvc.LegacyKeySvc = (*MockLegacyKeySvc)(nil)

// --- Mock GoogleOAuthHandlerSvcFacade ---

type MockGoogleOAuthSvc struct {
	mock.Mock
}

func (m *MockGoogleOAuthSvc) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthSvc) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthSvc) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	var token *oauth2.Token
	if args.Get(0) != nil {
		token = args.Get(0).(*oauth2.Token)
	}
	return token, args.Error(1)
}

func (m *MockGoogleOAuthSvc) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	var info *domain.GoogleUserInfo
	if args.Get(0) != nil {
		info = args.Get(0).(*domain.GoogleUserInfo)
	}
	return info, args.Error(1)
}

func (m *MockGoogleOAuthSvc) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	var payload *idtoken.Payload
	if args.Get(0) != nil {
		payload = args.Get(0).(*idtoken.Payload)
	}
	return payload, args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthSvc)(nil)
