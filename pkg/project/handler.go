package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	rest "github.com/studyflow/studyflow/internal/rest"
)

type ProjectPlanDTO struct {
	Id         string               `json:"id"`
	Title      string               `json:"title"`
	Categories []ProjectCategoryDTO `json:"categories"`
}

type ProjectCategoryDTO struct {
	Id    string           `json:"id"`
	Name  string           `json:"name"`
	Tasks []ProjectTaskDTO `json:"tasks"`
}

type ProjectTaskDTO struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Deadline    string `json:"deadline"`
	IsCompleted bool   `json:"isCompleted"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags Project
// @Accept json
// @Produce json
// @Param project body object{title=string} true "Project details"
// @Success 201 {object} ProjectPlanDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid project parameters"
// @Router /api/project [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var createDTO struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		writeBadRequest(w, "Invalid request body format")
		return
	}

	created, err := h.service.CreateProject(r.Context(), createDTO.Title)
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			writeBadRequest(w, err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectPlanToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListProjects godoc
// @Summary List all projects with their categories and tasks
// @Tags Project
// @Produce json
// @Success 200 {array} ProjectPlanDTO
// @Router /api/project [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	projectsDTO := make([]ProjectPlanDTO, 0, len(projects))
	for _, p := range projects {
		projectsDTO = append(projectsDTO, ProjectPlanToDTO(p))
	}
	if err := json.NewEncoder(w).Encode(projectsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteProject godoc
// @Summary Delete a project with its categories and tasks
// @Tags Project
// @Param projectId path string true "Project ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.DeleteProject(r.Context(), vars["projectId"]); err != nil {
		writeNotFoundOrInternal(w, err, ErrProjectNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCategory godoc
// @Summary Add a category to a project
// @Tags Project
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param category body object{name=string} true "Category details"
// @Success 201 {object} ProjectCategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid category parameters"
// @Failure 404 {string} string "Project Not Found"
// @Router /api/project/{projectId}/category [post]
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var createDTO struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		writeBadRequest(w, "Invalid request body format")
		return
	}

	category, err := h.service.AddCategory(r.Context(), vars["projectId"], createDTO.Name)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			writeBadRequest(w, err.Error())
			return
		}
		writeNotFoundOrInternal(w, err, ErrProjectNotFound)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectCategoryToDTO(category)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteCategory godoc
// @Summary Delete a category with its tasks
// @Tags Project
// @Param projectId path string true "Project ID"
// @Param categoryId path string true "Category ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Category Not Found"
// @Router /api/project/{projectId}/category/{categoryId} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.DeleteCategory(r.Context(), vars["projectId"], vars["categoryId"]); err != nil {
		writeNotFoundOrInternal(w, err, ErrCategoryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTask godoc
// @Summary Add a task with a deadline to a category
// @Tags Project
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param categoryId path string true "Category ID"
// @Param task body object{name=string,deadline=string} true "Task details"
// @Success 201 {object} ProjectTaskDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid task parameters"
// @Failure 404 {string} string "Category Not Found"
// @Router /api/project/{projectId}/category/{categoryId}/task [post]
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var createDTO struct {
		Name     string `json:"name"`
		Deadline string `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		writeBadRequest(w, "Invalid request body format")
		return
	}

	deadline, err := time.Parse(DateLayout, createDTO.Deadline)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect deadline format",
			Details: "Dates must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	task, err := h.service.AddTask(r.Context(), vars["projectId"], vars["categoryId"], ProjectTask{
		Name:     createDTO.Name,
		Deadline: deadline,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			writeBadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectTaskToDTO(task)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ToggleTask godoc
// @Summary Toggle a project task's completion flag
// @Tags Project
// @Produce json
// @Param projectId path string true "Project ID"
// @Param categoryId path string true "Category ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} ProjectPlanDTO
// @Failure 404 {string} string "Task Not Found"
// @Router /api/project/{projectId}/category/{categoryId}/task/{taskId} [patch]
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	updated, err := h.service.ToggleTask(r.Context(), vars["projectId"], vars["categoryId"], vars["taskId"])
	if err != nil {
		writeNotFoundOrInternal(w, err, ErrTaskNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(ProjectPlanToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteTask godoc
// @Summary Delete a task from a category
// @Tags Project
// @Param projectId path string true "Project ID"
// @Param categoryId path string true "Category ID"
// @Param taskId path string true "Task ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Task Not Found"
// @Router /api/project/{projectId}/category/{categoryId}/task/{taskId} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.DeleteTask(r.Context(), vars["projectId"], vars["categoryId"], vars["taskId"]); err != nil {
		writeNotFoundOrInternal(w, err, ErrTaskNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeNotFoundOrInternal(w http.ResponseWriter, err error, notFound error) {
	if errors.Is(err, notFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func ProjectPlanToDTO(project ProjectPlan) ProjectPlanDTO {
	categoriesDTO := make([]ProjectCategoryDTO, 0, len(project.Categories))
	for _, category := range project.Categories {
		categoriesDTO = append(categoriesDTO, ProjectCategoryToDTO(category))
	}
	return ProjectPlanDTO{
		Id:         project.Id,
		Title:      project.Title,
		Categories: categoriesDTO,
	}
}

func ProjectCategoryToDTO(category ProjectCategory) ProjectCategoryDTO {
	tasksDTO := make([]ProjectTaskDTO, 0, len(category.Tasks))
	for _, task := range category.Tasks {
		tasksDTO = append(tasksDTO, ProjectTaskToDTO(task))
	}
	return ProjectCategoryDTO{
		Id:    category.Id,
		Name:  category.Name,
		Tasks: tasksDTO,
	}
}

func ProjectTaskToDTO(task ProjectTask) ProjectTaskDTO {
	return ProjectTaskDTO{
		Id:          task.Id,
		Name:        task.Name,
		Deadline:    task.Deadline.Format(DateLayout),
		IsCompleted: task.IsCompleted,
	}
}
