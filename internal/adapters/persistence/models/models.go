package models

import (
	"time"

	"gorm.io/gorm"
)

// Account roles
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
	RoleCEO        = "CEO"
)

// Account statuses
const (
	StatusInactive = "INACTIVE"
	StatusActive   = "ACTIVE"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin, RoleCEO:
		return true
	}
	return false
}

// Account represents accounts table
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Image     string         `gorm:"size:255" json:"image"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	RegionID  uint           `gorm:"index" json:"region_id"`
	Status    string         `gorm:"size:20;default:'INACTIVE'" json:"status"`
	BirthYear int            `json:"birth_year"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsActive reports whether the account finished email verification
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// AccountResponse DTO (password hash never leaves the server)
type AccountResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Image      string    `json:"image,omitempty"`
	Role       string    `json:"role"`
	RegionID   uint      `json:"region_id"`
	RegionName string    `json:"region_name,omitempty"`
	Status     string    `json:"status"`
	BirthYear  int       `json:"birth_year,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Image:     a.Image,
		Role:      a.Role,
		RegionID:  a.RegionID,
		Status:    a.Status,
		BirthYear: a.BirthYear,
		CreatedAt: a.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AccountID uint       `gorm:"index;not null" json:"account_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Account   Account    `gorm:"foreignKey:AccountID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Region represents regions table (Master)
type Region struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Region) TableName() string {
	return "regions"
}

// Center represents centers table (learning center directory entry)
type Center struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Image     string         `gorm:"size:255" json:"image"`
	RegionID  uint           `gorm:"index;not null" json:"region_id"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Region    Region         `gorm:"foreignKey:RegionID" json:"-"`
	Owner     Account        `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Center) TableName() string {
	return "centers"
}

// AutoMigrate migrates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Region{},
		&Account{},
		&RefreshToken{},
		&Center{},
	)
}
