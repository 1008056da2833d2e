// Package escalation bumps unattended pending requests to High priority so
// they climb responder dashboards instead of going stale.
package escalation

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/service"
)

type Scheduler struct {
	dispatch *service.DispatchService
	after    time.Duration
	cron     *cron.Cron
}

func NewScheduler(dispatch *service.DispatchService, after time.Duration) *Scheduler {
	return &Scheduler{dispatch: dispatch, after: after}
}

// Start runs the escalation sweep every minute. A zero threshold disables
// the scheduler.
func (s *Scheduler) Start() {
	if s.after <= 0 {
		log.Println("Escalation scheduler disabled (ESCALATE_AFTER=0)")
		return
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc("* * * * *", s.sweep)
	if err != nil {
		log.Printf("Failed to create escalation job: %v", err)
		return
	}

	log.Printf("Escalation scheduler started (pending > %s becomes High)", s.after)
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	escalated, err := s.dispatch.EscalateStale(ctx, s.after)
	if err != nil {
		log.Printf("Escalation sweep failed: %v", err)
		return
	}
	if len(escalated) > 0 {
		log.Printf("Escalated %d stale pending request(s)", len(escalated))
	}
}
