package backup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	rest "github.com/studyflow/studyflow/internal/rest"
	"github.com/studyflow/studyflow/pkg/project"
	"github.com/studyflow/studyflow/pkg/study_plan"
)

type DocumentDTO struct {
	Plans      []study_plan.StudyPlanDTO `json:"plans"`
	Projects   []project.ProjectPlanDTO  `json:"projects"`
	ExportDate time.Time                 `json:"exportDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Export godoc
// @Summary Export all plans and projects as one backup document
// @Tags Backup
// @Produce json
// @Success 200 {object} DocumentDTO
// @Router /api/backup [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	doc, err := h.service.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	plansDTO := make([]study_plan.StudyPlanDTO, 0, len(doc.Plans))
	for _, plan := range doc.Plans {
		plansDTO = append(plansDTO, study_plan.StudyPlanToDTO(plan))
	}
	projectsDTO := make([]project.ProjectPlanDTO, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		projectsDTO = append(projectsDTO, project.ProjectPlanToDTO(p))
	}

	if err := json.NewEncoder(w).Encode(DocumentDTO{
		Plans:      plansDTO,
		Projects:   projectsDTO,
		ExportDate: doc.ExportDate,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Import godoc
// @Summary Replace all plans and projects with a backup document
// @Description Rejects the document without touching state unless both the plans and projects keys are present and valid
// @Tags Backup
// @Accept json
// @Success 204 {string} string "No Content"
// @Failure 400 {object} rest.ErrorResponse "Malformed backup document"
// @Router /api/backup [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	// Pointer slices distinguish a missing key from an empty list.
	var docDTO struct {
		Plans    *[]study_plan.StudyPlanDTO `json:"plans"`
		Projects *[]project.ProjectPlanDTO  `json:"projects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&docDTO); err != nil {
		writeRejection(w, "Invalid backup document syntax")
		return
	}
	if docDTO.Plans == nil || docDTO.Projects == nil {
		writeRejection(w, "Backup document must contain both plans and projects")
		return
	}

	plans := make([]study_plan.StudyPlan, 0, len(*docDTO.Plans))
	for _, planDTO := range *docDTO.Plans {
		plan, err := planFromDTO(planDTO)
		if err != nil {
			writeRejection(w, err.Error())
			return
		}
		plans = append(plans, plan)
	}
	projects := make([]project.ProjectPlan, 0, len(*docDTO.Projects))
	for _, projectDTO := range *docDTO.Projects {
		p, err := projectFromDTO(projectDTO)
		if err != nil {
			writeRejection(w, err.Error())
			return
		}
		projects = append(projects, p)
	}

	if err := h.service.Import(r.Context(), Document{Plans: plans, Projects: projects}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRejection(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: "State was not modified",
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func planFromDTO(dto study_plan.StudyPlanDTO) (study_plan.StudyPlan, error) {
	if dto.Id == "" {
		return study_plan.StudyPlan{}, fmt.Errorf("plan %q is missing an id", dto.Subject)
	}
	startDate, err := time.Parse(study_plan.DateLayout, dto.StartDate)
	if err != nil {
		return study_plan.StudyPlan{}, fmt.Errorf("plan %s has an invalid startDate: %s", dto.Id, dto.StartDate)
	}
	endDate, err := time.Parse(study_plan.DateLayout, dto.EndDate)
	if err != nil {
		return study_plan.StudyPlan{}, fmt.Errorf("plan %s has an invalid endDate: %s", dto.Id, dto.EndDate)
	}

	tasks := make([]study_plan.DailyTask, 0, len(dto.Tasks))
	for _, taskDTO := range dto.Tasks {
		date, err := time.Parse(study_plan.DateLayout, taskDTO.Date)
		if err != nil {
			return study_plan.StudyPlan{}, fmt.Errorf("plan %s has a task with an invalid date: %s", dto.Id, taskDTO.Date)
		}
		tasks = append(tasks, study_plan.DailyTask{
			Date:         date,
			PagesToRead:  taskDTO.PagesToRead,
			IsRestDay:    taskDTO.IsRestDay,
			IsCompleted:  taskDTO.IsCompleted,
			MinutesSpent: taskDTO.MinutesSpent,
		})
	}

	return study_plan.StudyPlan{
		Id:               dto.Id,
		Subject:          dto.Subject,
		Category:         dto.Category,
		Color:            dto.Color,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalPages:       dto.TotalPages,
		FrequencyPerWeek: dto.FrequencyPerWeek,
		Tasks:            tasks,
		TotalMinutes:     dto.TotalMinutes,
		AiAdvice:         dto.AiAdvice,
	}, nil
}

func projectFromDTO(dto project.ProjectPlanDTO) (project.ProjectPlan, error) {
	if dto.Id == "" {
		return project.ProjectPlan{}, fmt.Errorf("project %q is missing an id", dto.Title)
	}
	categories := make([]project.ProjectCategory, 0, len(dto.Categories))
	for _, categoryDTO := range dto.Categories {
		tasks := make([]project.ProjectTask, 0, len(categoryDTO.Tasks))
		for _, taskDTO := range categoryDTO.Tasks {
			deadline, err := time.Parse(project.DateLayout, taskDTO.Deadline)
			if err != nil {
				return project.ProjectPlan{}, fmt.Errorf("project %s has a task with an invalid deadline: %s", dto.Id, taskDTO.Deadline)
			}
			tasks = append(tasks, project.ProjectTask{
				Id:          taskDTO.Id,
				Name:        taskDTO.Name,
				Deadline:    deadline,
				IsCompleted: taskDTO.IsCompleted,
			})
		}
		categories = append(categories, project.ProjectCategory{
			Id:    categoryDTO.Id,
			Name:  categoryDTO.Name,
			Tasks: tasks,
		})
	}
	return project.ProjectPlan{
		Id:         dto.Id,
		Title:      dto.Title,
		Categories: categories,
	}, nil
}
