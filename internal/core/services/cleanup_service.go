package services

import (
	"context"
	"log"
	"time"

	"educenter/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService purges expired refresh tokens on a schedule
type CleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *CleanupService {
	return &CleanupService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily purge (03:00)
func (s *CleanupService) Start() {
	_, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)
	if err != nil {
		log.Printf("failed to schedule token cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Token cleanup scheduled (daily 03:00)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
}

func (s *CleanupService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("expired token purge failed: %v", err)
		return
	}
	log.Println("Expired refresh tokens purged")
}
