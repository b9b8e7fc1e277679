package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrSelfPromotionDenied = errors.New("you cannot promote yourself")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCannotDeleteOther   = errors.New("cannot delete another user's account")
)

// UserService handles account administration
type UserService struct {
	accountRepo repositories.AccountRepository
	regionRepo  repositories.RegionRepository
}

// NewUserService creates a new user service
func NewUserService(
	accountRepo repositories.AccountRepository,
	regionRepo repositories.RegionRepository,
) *UserService {
	return &UserService{
		accountRepo: accountRepo,
		regionRepo:  regionRepo,
	}
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.AccountResponse `json:"users"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ListUsers lists all accounts with pagination
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ListUsersOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	accounts, total, err := s.accountRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = account.ToResponse()
		region, err := s.regionRepo.GetByID(ctx, account.RegionID)
		if err == nil && region != nil {
			responses[i].RegionName = region.Name
		}
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetProfile gets an account profile with its region name
func (s *UserService) GetProfile(ctx context.Context, accountID uint) (*models.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	response := account.ToResponse()
	region, err := s.regionRepo.GetByID(ctx, account.RegionID)
	if err == nil && region != nil {
		response.RegionName = region.Name
	}

	return response, nil
}

// PromoteRole changes a target account's role. Only reachable through the
// ADMIN-gated promotion endpoint; self-promotion is rejected here as well.
// Returns the updated account and a human-readable outcome message.
func (s *UserService) PromoteRole(ctx context.Context, actorID, targetID uint, newRole string) (*models.AccountResponse, string, error) {
	if !models.ValidRole(newRole) {
		return nil, "", ErrInvalidRole
	}

	if actorID == targetID {
		return nil, "", ErrSelfPromotionDenied
	}

	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", err
	}

	if target.Role == newRole {
		return target.ToResponse(), fmt.Sprintf("User already has role %s", newRole), nil
	}

	oldRole := target.Role
	target.Role = newRole
	if err := s.accountRepo.Update(ctx, target); err != nil {
		return nil, "", err
	}

	log.Printf("role changed for account %d: %s -> %s (by %d)", targetID, oldRole, newRole, actorID)

	return target.ToResponse(), fmt.Sprintf("Role updated from %s to %s", oldRole, newRole), nil
}

// DeleteUser removes an account. A user may delete only their own account;
// admins may delete anyone.
func (s *UserService) DeleteUser(ctx context.Context, actorID uint, actorRole string, targetID uint) error {
	isAdmin := actorRole == models.RoleAdmin || actorRole == models.RoleSuperAdmin
	if actorID != targetID && !isAdmin {
		return ErrCannotDeleteOther
	}

	if _, err := s.accountRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	return s.accountRepo.Delete(ctx, targetID)
}
