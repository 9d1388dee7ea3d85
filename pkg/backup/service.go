package backup

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/utils"
	"github.com/studyflow/studyflow/pkg/project"
	"github.com/studyflow/studyflow/pkg/study_plan"
)

// Document is the full application state as one exportable unit.
type Document struct {
	Plans      []study_plan.StudyPlan
	Projects   []project.ProjectPlan
	ExportDate time.Time
}

type Service interface {
	Export(ctx context.Context) (Document, error)
	// Import replaces both stores wholesale with the document's content.
	// On any failure the previous state is kept.
	Import(ctx context.Context, doc Document) error
}

type ServiceImpl struct {
	planRepo    study_plan.Repository
	projectRepo project.Repository
	clock       utils.Clock
}

func NewService(planRepo study_plan.Repository, projectRepo project.Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		planRepo:    planRepo,
		projectRepo: projectRepo,
		clock:       clock,
	}
}

func (s *ServiceImpl) Export(ctx context.Context) (Document, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		return Document{}, err
	}
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Plans:      plans,
		Projects:   projects,
		ExportDate: s.clock.Now(),
	}, nil
}

// Import writes plans and projects inside nested transactions so a failure in
// either store rolls back both. Plans are stored as they appear in the
// document: schedules are not regenerated and no advice is fetched.
func (s *ServiceImpl) Import(ctx context.Context, doc Document) error {
	err := s.planRepo.WithTransaction(ctx, func(planRepo study_plan.Repository) error {
		if _, err := planRepo.DeleteAllPlans(ctx); err != nil {
			return err
		}
		for _, plan := range doc.Plans {
			if _, err := planRepo.CreatePlan(ctx, plan); err != nil {
				return err
			}
		}
		return s.projectRepo.WithTransaction(ctx, func(projectRepo project.Repository) error {
			if _, err := projectRepo.DeleteAllProjects(ctx); err != nil {
				return err
			}
			for _, p := range doc.Projects {
				if _, err := projectRepo.CreateProject(ctx, p); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Errorf("backup import failed, state unchanged: %v", err)
		return err
	}
	log.Infof("backup imported: %d plans, %d projects", len(doc.Plans), len(doc.Projects))
	return nil
}
