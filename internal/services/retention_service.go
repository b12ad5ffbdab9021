package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskpilot/taskpilot-api/internal/repository"
)

// RetentionService periodically removes assistant interactions whose
// retention window has passed.
type RetentionService struct {
	interactionRepo repository.InteractionRepository
	cron            *cron.Cron
}

// NewRetentionService creates a new RetentionService.
func NewRetentionService(interactionRepo repository.InteractionRepository) *RetentionService {
	return &RetentionService{
		interactionRepo: interactionRepo,
		cron:            cron.New(),
	}
}

// Start schedules the hourly sweep and begins running it.
func (s *RetentionService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *RetentionService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep deletes expired interactions once.
func (s *RetentionService) Sweep() {
	count, err := s.interactionRepo.DeleteExpired(time.Now())
	if err != nil {
		log.Printf("Retention sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Retention sweep removed %d expired interaction(s)", count)
	}
}
