package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"restaurant-api/logger"
	"restaurant-api/restaurant-svc/internal/domain"
)

const maxAddressLength = 255

type ProfileService struct {
	repo ProfileRepository
	log  *logger.Logger
}

func NewProfileService(repo ProfileRepository, log *logger.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// Resolve mirrors the token user into the store and returns the identity
// carrying the stored role.
func (s *ProfileService) Resolve(ctx context.Context, user domain.User) (domain.Identity, error) {
	if user.ID <= 0 {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if err := s.repo.EnsureUser(ctx, user); err != nil {
		return domain.Identity{}, err
	}
	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Admin:    user.IsAdmin,
		Role:     profile.Role,
	}, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, caller domain.Identity) (*domain.UserProfile, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, caller.UserID)
}

// UpdateProfile applies the self-service fields. The role is never
// writable here.
func (s *ProfileService) UpdateProfile(ctx context.Context, caller domain.Identity, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}
	if patch.Address == nil {
		return s.repo.GetProfile(ctx, caller.UserID)
	}
	address := strings.TrimSpace(*patch.Address)
	if len(address) > maxAddressLength {
		return nil, fmt.Errorf("%w: address longer than %d characters", domain.ErrInvalidInput, maxAddressLength)
	}
	return s.repo.UpdateAddress(ctx, caller.UserID, address)
}

func (s *ProfileService) AssignManager(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error) {
	if err := Require(caller, CapAdmin); err != nil {
		return nil, err
	}
	return s.setRole(ctx, "assign_manager", userID, domain.RoleManager)
}

func (s *ProfileService) GrantDeliveryCrew(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error) {
	if err := Require(caller, CapManager); err != nil {
		return nil, err
	}
	return s.setRole(ctx, "grant_delivery_crew", userID, domain.RoleDeliveryCrew)
}

func (s *ProfileService) RevokeRole(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error) {
	if err := Require(caller, CapAdmin); err != nil {
		return nil, err
	}
	return s.setRole(ctx, "revoke_role", userID, domain.RoleCustomer)
}

func (s *ProfileService) setRole(ctx context.Context, action string, userID int, role domain.Role) (*domain.UserProfile, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}

	current, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.Role == role {
		return current, nil
	}

	if err := s.repo.SetRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.log.Info(action, logger.RequestID(ctx), "user role changed",
		slog.Int("user_id", userID),
		slog.String("from", string(current.Role)),
		slog.String("to", string(role)),
	)

	current.Role = role
	return current, nil
}
