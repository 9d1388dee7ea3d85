package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/utils"
	"github.com/studyflow/studyflow/pkg/study_plan"
)

// Service logs a digest of today's pending study tasks on a cron schedule.
type Service struct {
	planService study_plan.Service
	clock       utils.Clock
	schedule    string
	cron        *cron.Cron
}

func NewService(planService study_plan.Service, clock utils.Clock, schedule string) *Service {
	return &Service{
		planService: planService,
		clock:       clock,
		schedule:    schedule,
		cron:        cron.New(),
	}
}

// Start registers the digest job and starts the scheduler.
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		digest, err := s.DailyDigest(context.Background())
		if err != nil {
			log.Errorf("failed to build daily digest: %v", err)
			return
		}
		log.Info(digest)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Infof("daily reminder scheduled: %s", s.schedule)
	return nil
}

// Stop waits for a running job to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// DailyDigest lists every plan's uncompleted task for today. Plans resting
// today or with nothing left to read are skipped.
func (s *Service) DailyDigest(ctx context.Context) (string, error) {
	plans, err := s.planService.ListPlans(ctx)
	if err != nil {
		return "", err
	}

	today := study_plan.Date(s.clock.Now())
	var lines []string
	for _, plan := range plans {
		for _, task := range plan.Tasks {
			if !task.Date.Equal(today) {
				continue
			}
			if task.IsRestDay || task.IsCompleted || task.PagesToRead == 0 {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s: %d pages", plan.Subject, task.PagesToRead))
			break
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("Study digest for %s: nothing pending today", today.Format(study_plan.DateLayout)), nil
	}
	return fmt.Sprintf("Study digest for %s:\n%s", today.Format(study_plan.DateLayout), strings.Join(lines, "\n")), nil
}
