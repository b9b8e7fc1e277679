package repositories

import (
	"context"

	"educenter/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// centerRepository implements CenterRepository interface
type centerRepository struct {
	db *gorm.DB
}

// NewCenterRepository creates a new center repository
func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

// Create creates a new center
func (r *centerRepository) Create(ctx context.Context, center *models.Center) error {
	return r.db.WithContext(ctx).Create(center).Error
}

// GetByID gets a center by ID
func (r *centerRepository) GetByID(ctx context.Context, id uint) (*models.Center, error) {
	var center models.Center
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&center).Error
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// Update updates a center
func (r *centerRepository) Update(ctx context.Context, center *models.Center) error {
	return r.db.WithContext(ctx).Save(center).Error
}

// Delete soft deletes a center
func (r *centerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Center{}, id).Error
}

// List lists centers with pagination, optionally scoped to a region
func (r *centerRepository) List(ctx context.Context, regionID uint, offset, limit int) ([]*models.Center, int64, error) {
	var centers []*models.Center
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Center{})
	if regionID != 0 {
		query = query.Where("region_id = ?", regionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&centers).Error; err != nil {
		return nil, 0, err
	}

	return centers, total, nil
}
