package repositories

import (
	"context"

	"educenter/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// regionRepository implements RegionRepository interface
type regionRepository struct {
	db *gorm.DB
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

// Create creates a new region
func (r *regionRepository) Create(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

// GetByID gets a region by ID
func (r *regionRepository) GetByID(ctx context.Context, id uint) (*models.Region, error) {
	var region models.Region
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&region).Error
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// GetByName gets a region by name
func (r *regionRepository) GetByName(ctx context.Context, name string) (*models.Region, error) {
	var region models.Region
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&region).Error
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// List lists all regions ordered by name
func (r *regionRepository) List(ctx context.Context) ([]*models.Region, error) {
	var regions []*models.Region
	err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// Update updates a region
func (r *regionRepository) Update(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Save(region).Error
}

// Delete soft deletes a region
func (r *regionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Region{}, id).Error
}

// Exists checks if a region exists
func (r *regionRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Region{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
