package study_plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	rest "github.com/studyflow/studyflow/internal/rest"
)

type StudyPlanDTO struct {
	Id               string         `json:"id"`
	Subject          string         `json:"subject"`
	Category         string         `json:"category"`
	Color            string         `json:"color"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	TotalPages       int            `json:"totalPages"`
	FrequencyPerWeek int            `json:"frequencyPerWeek"`
	Tasks            []DailyTaskDTO `json:"tasks"`
	CompletedPages   int            `json:"completedPages"`
	TotalMinutes     int            `json:"totalMinutes"`
	AiAdvice         string         `json:"aiAdvice,omitempty"`
}

type DailyTaskDTO struct {
	Date         string `json:"date"`
	PagesToRead  int    `json:"pagesToRead"`
	IsRestDay    bool   `json:"isRestDay"`
	IsCompleted  bool   `json:"isCompleted"`
	MinutesSpent int    `json:"minutesSpent"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreatePlan godoc
// @Summary Create a study plan
// @Description Build the daily task schedule for a new plan and attach advisory text
// @Tags StudyPlan
// @Accept json
// @Produce json
// @Param plan body object{subject=string,category=string,color=string,startDate=string,endDate=string,totalPages=int,frequencyPerWeek=int} true "Plan details"
// @Success 201 {object} StudyPlanDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid plan parameters"
// @Router /api/plan [post]
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var createDTO struct {
		Subject          string `json:"subject"`
		Category         string `json:"category"`
		Color            string `json:"color"`
		StartDate        string `json:"startDate"`
		EndDate          string `json:"endDate"`
		TotalPages       int    `json:"totalPages"`
		FrequencyPerWeek int    `json:"frequencyPerWeek"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	startDate, err := time.Parse(DateLayout, createDTO.StartDate)
	if err != nil {
		writeDateFormatError(w, "startDate")
		return
	}
	endDate, err := time.Parse(DateLayout, createDTO.EndDate)
	if err != nil {
		writeDateFormatError(w, "endDate")
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), StudyPlan{
		Subject:          createDTO.Subject,
		Category:         createDTO.Category,
		Color:            createDTO.Color,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalPages:       createDTO.TotalPages,
		FrequencyPerWeek: createDTO.FrequencyPerWeek,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) || errors.Is(err, ErrInvalidTotalPages) || errors.Is(err, ErrInvalidFrequency) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(StudyPlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListPlans godoc
// @Summary List all study plans
// @Tags StudyPlan
// @Produce json
// @Success 200 {array} StudyPlanDTO
// @Router /api/plan [get]
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	plansDTO := make([]StudyPlanDTO, 0, len(plans))
	for _, plan := range plans {
		plansDTO = append(plansDTO, StudyPlanToDTO(plan))
	}
	if err := json.NewEncoder(w).Encode(plansDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetPlan godoc
// @Summary Get one study plan with its full task schedule
// @Tags StudyPlan
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} StudyPlanDTO
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId} [get]
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	plan, err := h.service.GetPlan(r.Context(), vars["planId"])
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(StudyPlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeletePlan godoc
// @Summary Delete a study plan and its schedule
// @Tags StudyPlan
// @Param planId path string true "Plan ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId} [delete]
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	deleted, err := h.service.DeletePlan(r.Context(), vars["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask godoc
// @Summary Toggle completion of one day's task
// @Description Flips the task's completion flag; completed pages are recomputed
// @Tags StudyPlan
// @Produce json
// @Param planId path string true "Plan ID"
// @Param date path string true "Task date (YYYY-MM-DD)"
// @Success 200 {object} StudyPlanDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId}/task/{date} [patch]
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	date, err := time.Parse(DateLayout, vars["date"])
	if err != nil {
		writeDateFormatError(w, "date")
		return
	}

	plan, err := h.service.ToggleTask(r.Context(), vars["planId"], date)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(StudyPlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddMinutes godoc
// @Summary Credit focused minutes to a plan
// @Description Adds minutes to the task on the given date and to the plan total
// @Tags StudyPlan
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param body body object{date=string,minutes=int} true "Date and minutes"
// @Success 200 {object} StudyPlanDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId}/minutes [post]
func (h *Handler) AddMinutes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var minutesDTO struct {
		Date    string `json:"date"`
		Minutes int    `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&minutesDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	date, err := time.Parse(DateLayout, minutesDTO.Date)
	if err != nil {
		writeDateFormatError(w, "date")
		return
	}

	plan, err := h.service.AddMinutes(r.Context(), vars["planId"], date, minutesDTO.Minutes)
	if err != nil {
		if errors.Is(err, ErrNegativeMinutes) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(StudyPlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeDateFormatError(w http.ResponseWriter, field string) {
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Incorrect " + field + " format",
		Details: "Dates must be in YYYY-MM-DD format",
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func StudyPlanToDTO(plan StudyPlan) StudyPlanDTO {
	tasksDTO := make([]DailyTaskDTO, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		tasksDTO = append(tasksDTO, DailyTaskDTO{
			Date:         task.Date.Format(DateLayout),
			PagesToRead:  task.PagesToRead,
			IsRestDay:    task.IsRestDay,
			IsCompleted:  task.IsCompleted,
			MinutesSpent: task.MinutesSpent,
		})
	}
	return StudyPlanDTO{
		Id:               plan.Id,
		Subject:          plan.Subject,
		Category:         plan.Category,
		Color:            plan.Color,
		StartDate:        plan.StartDate.Format(DateLayout),
		EndDate:          plan.EndDate.Format(DateLayout),
		TotalPages:       plan.TotalPages,
		FrequencyPerWeek: plan.FrequencyPerWeek,
		Tasks:            tasksDTO,
		CompletedPages:   plan.CompletedPages,
		TotalMinutes:     plan.TotalMinutes,
		AiAdvice:         plan.AiAdvice,
	}
}
