package app

import (
	"github.com/gorilla/mux"
	"github.com/studyflow/studyflow/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Study plans
	r.HandleFunc("/api/plan", deps.StudyPlanHandler.ListPlans).Methods("GET")
	r.HandleFunc("/api/plan", deps.StudyPlanHandler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/plan/{planId}", deps.StudyPlanHandler.GetPlan).Methods("GET")
	r.HandleFunc("/api/plan/{planId}", deps.StudyPlanHandler.DeletePlan).Methods("DELETE")
	r.HandleFunc("/api/plan/{planId}/task/{date}", deps.StudyPlanHandler.ToggleTask).Methods("PATCH")
	r.HandleFunc("/api/plan/{planId}/minutes", deps.StudyPlanHandler.AddMinutes).Methods("POST")

	// Focus sessions
	r.HandleFunc("/api/focus/session", deps.FocusHandler.CompleteSession).Methods("POST")

	// Weekly timetable
	r.HandleFunc("/api/timetable/event", deps.TimetableHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/timetable/event", deps.TimetableHandler.AddEvent).Methods("POST")
	r.HandleFunc("/api/timetable/event/{eventId}", deps.TimetableHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/timetable/event", deps.TimetableHandler.ClearAll).Methods("DELETE")
	r.HandleFunc("/api/timetable/grid", deps.TimetableHandler.GetGrid).Methods("GET")
	r.HandleFunc("/api/timetable/schedule", deps.TimetableHandler.ScheduleFromText).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/weekly", deps.StatsHandler.GetWeeklyReport).Methods("GET")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")
	r.HandleFunc("/api/project/{projectId}/category", deps.ProjectHandler.AddCategory).Methods("POST")
	r.HandleFunc("/api/project/{projectId}/category/{categoryId}", deps.ProjectHandler.DeleteCategory).Methods("DELETE")
	r.HandleFunc("/api/project/{projectId}/category/{categoryId}/task", deps.ProjectHandler.AddTask).Methods("POST")
	r.HandleFunc("/api/project/{projectId}/category/{categoryId}/task/{taskId}", deps.ProjectHandler.ToggleTask).Methods("PATCH")
	r.HandleFunc("/api/project/{projectId}/category/{categoryId}/task/{taskId}", deps.ProjectHandler.DeleteTask).Methods("DELETE")

	// Backup
	r.HandleFunc("/api/backup", deps.BackupHandler.Export).Methods("GET")
	r.HandleFunc("/api/backup", deps.BackupHandler.Import).Methods("POST")
}
