package project

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrEmptyName  = errors.New("name must not be empty")
)

type Service interface {
	CreateProject(ctx context.Context, title string) (ProjectPlan, error)
	ListProjects(ctx context.Context) ([]ProjectPlan, error)
	DeleteProject(ctx context.Context, projectId string) error
	AddCategory(ctx context.Context, projectId string, name string) (ProjectCategory, error)
	DeleteCategory(ctx context.Context, projectId string, categoryId string) error
	AddTask(ctx context.Context, projectId string, categoryId string, task ProjectTask) (ProjectTask, error)
	ToggleTask(ctx context.Context, projectId string, categoryId string, taskId string) (ProjectPlan, error)
	DeleteTask(ctx context.Context, projectId string, categoryId string, taskId string) error
}

type ServiceImpl struct {
	repository Repository
}

func NewService(repository Repository) *ServiceImpl {
	return &ServiceImpl{
		repository: repository,
	}
}

func (s *ServiceImpl) CreateProject(ctx context.Context, title string) (ProjectPlan, error) {
	if strings.TrimSpace(title) == "" {
		return ProjectPlan{}, ErrEmptyTitle
	}
	return s.repository.CreateProject(ctx, ProjectPlan{
		Id:         uuid.NewString(),
		Title:      title,
		Categories: []ProjectCategory{},
	})
}

func (s *ServiceImpl) ListProjects(ctx context.Context) ([]ProjectPlan, error) {
	return s.repository.ListProjects(ctx)
}

func (s *ServiceImpl) DeleteProject(ctx context.Context, projectId string) error {
	deleted, err := s.repository.DeleteProject(ctx, projectId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	return nil
}

func (s *ServiceImpl) AddCategory(ctx context.Context, projectId string, name string) (ProjectCategory, error) {
	if strings.TrimSpace(name) == "" {
		return ProjectCategory{}, ErrEmptyName
	}
	return s.repository.CreateCategory(ctx, projectId, ProjectCategory{
		Id:    uuid.NewString(),
		Name:  name,
		Tasks: []ProjectTask{},
	})
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, projectId string, categoryId string) error {
	deleted, err := s.repository.DeleteCategory(ctx, projectId, categoryId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *ServiceImpl) AddTask(ctx context.Context, projectId string, categoryId string, task ProjectTask) (ProjectTask, error) {
	if strings.TrimSpace(task.Name) == "" {
		return ProjectTask{}, ErrEmptyName
	}
	task.Id = uuid.NewString()
	task.IsCompleted = false
	return s.repository.CreateTask(ctx, projectId, categoryId, task)
}

// ToggleTask flips the task's completion flag and returns the project with
// its refreshed hierarchy.
func (s *ServiceImpl) ToggleTask(ctx context.Context, projectId string, categoryId string, taskId string) (ProjectPlan, error) {
	toggled, err := s.repository.ToggleTask(ctx, projectId, categoryId, taskId)
	if err != nil {
		return ProjectPlan{}, err
	}
	if !toggled {
		return ProjectPlan{}, ErrTaskNotFound
	}
	return s.repository.GetProject(ctx, projectId)
}

func (s *ServiceImpl) DeleteTask(ctx context.Context, projectId string, categoryId string, taskId string) error {
	deleted, err := s.repository.DeleteTask(ctx, projectId, categoryId, taskId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}
