package scheduler

import (
	"fmt"
	"log"

	"SIPCompare/internal/compare"
	"SIPCompare/internal/display"
	"SIPCompare/internal/model"
	"SIPCompare/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic digest of the default plan.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *compare.Engine
	Recorder recorder.Recorder
	Plan     model.InvestmentPlan
}

// NewScheduler creates a new Scheduler for the given default plan.
func NewScheduler(engine *compare.Engine, rec recorder.Recorder, plan model.InvestmentPlan) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Recorder: rec,
		Plan:     plan,
	}
}

// RegisterAll registers the digest task.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (for RUN_ON_START).
func (s *Scheduler) RunDigestNow() (*model.Comparison, error) {
	return s.digest()
}

func (s *Scheduler) digestTask() {
	if _, err := s.digest(); err != nil {
		log.Printf("[ERROR] digest: %v", err)
	}
}

func (s *Scheduler) digest() (*model.Comparison, error) {
	log.Println("[INFO] running digest")
	plan := s.Plan
	plan.TenureMonths = display.ClampMonths(plan.TenureMonths, s.Engine.MaxTenure())

	cmp, err := s.Engine.Compare(plan)
	if err != nil {
		return nil, fmt.Errorf("compare default plan: %w", err)
	}
	text, err := display.Digest(cmp)
	if err != nil {
		return nil, fmt.Errorf("format digest: %w", err)
	}
	log.Printf("[INFO] %s", text)

	if err := s.Recorder.RecordComparison(&recorder.ComparisonEvent{
		Comparison: cmp,
		Trigger:    recorder.TriggerDigest,
	}); err != nil {
		log.Printf("[ERROR] record digest: %v", err)
	}
	return cmp, nil
}
