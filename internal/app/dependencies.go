package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyflow/studyflow/internal/config"
	"github.com/studyflow/studyflow/internal/event_bus"
	"github.com/studyflow/studyflow/internal/utils"
	"github.com/studyflow/studyflow/pkg/backup"
	"github.com/studyflow/studyflow/pkg/focus"
	"github.com/studyflow/studyflow/pkg/gemini"
	"github.com/studyflow/studyflow/pkg/project"
	"github.com/studyflow/studyflow/pkg/reminder"
	"github.com/studyflow/studyflow/pkg/stats"
	"github.com/studyflow/studyflow/pkg/study_plan"
	"github.com/studyflow/studyflow/pkg/timetable"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	GeminiClient gemini.Client

	StudyPlanRepo    study_plan.Repository
	StudyPlanService study_plan.Service
	StudyPlanHandler *study_plan.Handler

	TimetableRepo    timetable.Repository
	TimetableService *timetable.ServiceImpl
	TimetableHandler *timetable.Handler

	ProjectRepo    project.Repository
	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	FocusService *focus.ServiceImpl
	FocusHandler *focus.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	BackupService *backup.ServiceImpl
	BackupHandler *backup.Handler

	ReminderService *reminder.Service

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.GeminiClient = gemini.NewClient(cfg.Gemini)

	deps.StudyPlanRepo = study_plan.NewRepo(db)
	deps.StudyPlanService = study_plan.NewService(deps.StudyPlanRepo, deps.GeminiClient, deps.EventBus)
	deps.StudyPlanHandler = study_plan.NewHandler(deps.StudyPlanService)

	deps.TimetableRepo = timetable.NewRepository(db)
	deps.TimetableService = timetable.NewService(deps.TimetableRepo, deps.GeminiClient)
	deps.TimetableHandler = timetable.NewHandler(deps.TimetableService)

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.FocusService = focus.NewService(deps.EventBus)
	deps.FocusHandler = focus.NewHandler(deps.FocusService)

	deps.StatsService = stats.NewStatsService(deps.StudyPlanService, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	deps.BackupService = backup.NewService(deps.StudyPlanRepo, deps.ProjectRepo, deps.Clock)
	deps.BackupHandler = backup.NewHandler(deps.BackupService)

	deps.ReminderService = reminder.NewService(deps.StudyPlanService, deps.Clock, cfg.Reminder.Schedule)

	return deps
}
