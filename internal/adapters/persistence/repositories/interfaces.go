package repositories

import (
	"context"

	"educenter/internal/adapters/persistence/models"
)

// AccountRepository defines account repository interface (credential store)
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByAccountID(ctx context.Context, accountID uint) error
	DeleteExpired(ctx context.Context) error
}

// RegionRepository defines region repository interface
type RegionRepository interface {
	Create(ctx context.Context, region *models.Region) error
	GetByID(ctx context.Context, id uint) (*models.Region, error)
	GetByName(ctx context.Context, name string) (*models.Region, error)
	List(ctx context.Context) ([]*models.Region, error)
	Update(ctx context.Context, region *models.Region) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// CenterRepository defines learning center repository interface
type CenterRepository interface {
	Create(ctx context.Context, center *models.Center) error
	GetByID(ctx context.Context, id uint) (*models.Center, error)
	Update(ctx context.Context, center *models.Center) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, regionID uint, offset, limit int) ([]*models.Center, int64, error)
}
