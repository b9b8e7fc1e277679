package config

import (
	"log"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedRegions(); err != nil {
		return err
	}

	if err := s.seedAdminAccount(); err != nil {
		log.Printf("Admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedRegions seeds the region master list
func (s *Seeder) seedRegions() error {
	var count int64
	s.db.Model(&models.Region{}).Count(&count)
	if count > 0 {
		return nil
	}

	regions := []string{
		"Tashkent",
		"Samarkand",
		"Bukhara",
		"Andijan",
		"Fergana",
		"Namangan",
		"Khorezm",
		"Kashkadarya",
		"Surkhandarya",
		"Jizzakh",
		"Syrdarya",
		"Navoi",
		"Karakalpakstan",
	}

	for _, name := range regions {
		if err := s.db.Create(&models.Region{Name: name}).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d regions", len(regions))
	return nil
}

// seedAdminAccount seeds default admin account
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminAccount() error {
	var count int64
	s.db.Model(&models.Account{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	adminPass := getEnv("SEED_ADMIN_PASSWORD", "")
	if adminPass == "" {
		// Without an explicit password there is nothing safe to seed
		return nil
	}

	hashedPassword, err := password.Hash(adminPass)
	if err != nil {
		return err
	}

	admin := &models.Account{
		Name:     "Admin",
		Email:    getEnv("SEED_ADMIN_EMAIL", "admin@educenter.uz"),
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		RegionID: 1,
		Status:   models.StatusActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account: %s", admin.Email)
	return nil
}

// SeedData runs all seeders against the given database
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
