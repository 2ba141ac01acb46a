package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/repositories"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron     *cron.Cron
	userRepo repositories.UserRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		userRepo: repositories.NewUserRepository(db),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// nightly at 03:00: drop reset tokens that expired without being used
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredResetTokens); err != nil {
		log.Printf("❌ Failed to schedule reset token purge: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron jobs stopped")
}

func (s *CronService) purgeExpiredResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.userRepo.PurgeExpiredResetTokens(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Reset token purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("✅ Purged %d expired reset tokens", purged)
	}
}
