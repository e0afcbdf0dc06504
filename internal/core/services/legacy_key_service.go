package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/utils"
)

// legacyKeyService implements the LegacyKeySvc interface
type legacyKeyService struct {
	BaseService
	keyRepo portsrepo.LegacyKeyRepository
	userSvc portssvc.UserSvcFacade
}

// NewLegacyKeyService creates a new instance of legacyKeyService
func NewLegacyKeyService(keyRepo portsrepo.LegacyKeyRepository, userSvc portssvc.UserSvcFacade) portssvc.LegacyKeySvc {
	return &legacyKeyService{
		keyRepo: keyRepo,
		userSvc: userSvc,
	}
}

var _ portssvc.LegacyKeySvc = (*legacyKeyService)(nil)

// AuthenticateKey resolves an opaque legacy key to its owner. The raw key is
// hashed and looked up by exact digest match; the raw value is never stored or
// logged. Every mismatch is the same apperrors.ErrUnauthorized so callers
// cannot probe which stage rejected the key.
func (s *legacyKeyService) AuthenticateKey(ctx context.Context, secret string) (*domain.Principal, error) {
	if secret == "" {
		return nil, apperrors.ErrUnauthorized
	}

	key, err := s.keyRepo.FindByKeyHash(ctx, utils.HashSecret(secret))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up legacy key")
		return nil, fmt.Errorf("failed to look up legacy key: %w", err)
	}

	user, err := s.userSvc.GetUserByID(ctx, key.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve legacy key owner: %w", err)
	}

	return &domain.Principal{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Method: domain.AuthMethodLegacyKey,
	}, nil
}
