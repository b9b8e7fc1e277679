package services

import (
	"context"
	"errors"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Center service errors
var (
	ErrCenterNotFound = errors.New("center not found")
	ErrNotCenterOwner = errors.New("not the owner of this center")
)

// CenterService handles the learning center directory
type CenterService struct {
	centerRepo repositories.CenterRepository
	regionRepo repositories.RegionRepository
}

// NewCenterService creates a new center service
func NewCenterService(
	centerRepo repositories.CenterRepository,
	regionRepo repositories.RegionRepository,
) *CenterService {
	return &CenterService{
		centerRepo: centerRepo,
		regionRepo: regionRepo,
	}
}

// CenterInput represents center create/update input
type CenterInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
	RegionID uint   `json:"region_id"`
}

// CreateCenter registers a new center owned by the acting account
func (s *CenterService) CreateCenter(ctx context.Context, ownerID uint, input *CenterInput) (*models.Center, error) {
	exists, err := s.regionRepo.Exists(ctx, input.RegionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRegionNotFound
	}

	center := &models.Center{
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		Image:    input.Image,
		RegionID: input.RegionID,
		OwnerID:  ownerID,
	}

	if err := s.centerRepo.Create(ctx, center); err != nil {
		return nil, err
	}

	return center, nil
}

// GetCenter gets a center by ID
func (s *CenterService) GetCenter(ctx context.Context, id uint) (*models.Center, error) {
	center, err := s.centerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}
	return center, nil
}

// ListCenters lists centers with pagination, optionally filtered by region
func (s *CenterService) ListCenters(ctx context.Context, regionID uint, offset, limit int) ([]*models.Center, int64, error) {
	return s.centerRepo.List(ctx, regionID, offset, limit)
}

// UpdateCenter updates a center. Only the owner or an admin may update.
func (s *CenterService) UpdateCenter(ctx context.Context, actorID uint, actorRole string, id uint, input *CenterInput) (*models.Center, error) {
	center, err := s.GetCenter(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canManage(center, actorID, actorRole) {
		return nil, ErrNotCenterOwner
	}

	if input.RegionID != 0 && input.RegionID != center.RegionID {
		exists, err := s.regionRepo.Exists(ctx, input.RegionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRegionNotFound
		}
		center.RegionID = input.RegionID
	}

	if input.Name != "" {
		center.Name = input.Name
	}
	if input.Address != "" {
		center.Address = input.Address
	}
	if input.Phone != "" {
		center.Phone = input.Phone
	}
	if input.Image != "" {
		center.Image = input.Image
	}

	if err := s.centerRepo.Update(ctx, center); err != nil {
		return nil, err
	}

	return center, nil
}

// DeleteCenter removes a center. Only the owner or an admin may delete.
func (s *CenterService) DeleteCenter(ctx context.Context, actorID uint, actorRole string, id uint) error {
	center, err := s.GetCenter(ctx, id)
	if err != nil {
		return err
	}

	if !s.canManage(center, actorID, actorRole) {
		return ErrNotCenterOwner
	}

	return s.centerRepo.Delete(ctx, id)
}

func (s *CenterService) canManage(center *models.Center, actorID uint, actorRole string) bool {
	if center.OwnerID == actorID {
		return true
	}
	return actorRole == models.RoleAdmin || actorRole == models.RoleSuperAdmin
}
