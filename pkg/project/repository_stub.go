package project

import (
	"context"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu       sync.Mutex
	projects []ProjectPlan
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (r *RepositoryStub) WithTransaction(_ context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	snapshot := cloneProjects(r.projects)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.projects = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) CreateProject(_ context.Context, project ProjectPlan) (ProjectPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Newest project first, like the list endpoint returns them.
	r.projects = append([]ProjectPlan{cloneProject(project)}, r.projects...)
	return project, nil
}

func (r *RepositoryStub) GetProject(_ context.Context, projectId string) (ProjectPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, project := range r.projects {
		if project.Id == projectId {
			return cloneProject(project), nil
		}
	}
	return ProjectPlan{}, ErrProjectNotFound
}

func (r *RepositoryStub) ListProjects(_ context.Context) ([]ProjectPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneProjects(r.projects), nil
}

func (r *RepositoryStub) DeleteProject(_ context.Context, projectId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, project := range r.projects {
		if project.Id == projectId {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *RepositoryStub) DeleteAllProjects(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.projects)
	r.projects = nil
	return count, nil
}

func (r *RepositoryStub) CreateCategory(_ context.Context, projectId string, category ProjectCategory) (ProjectCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].Id == projectId {
			r.projects[i].Categories = append(r.projects[i].Categories, cloneCategory(category))
			return category, nil
		}
	}
	return ProjectCategory{}, ErrProjectNotFound
}

func (r *RepositoryStub) DeleteCategory(_ context.Context, projectId string, categoryId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].Id != projectId {
			continue
		}
		for j, category := range r.projects[i].Categories {
			if category.Id == categoryId {
				r.projects[i].Categories = append(r.projects[i].Categories[:j], r.projects[i].Categories[j+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *RepositoryStub) CreateTask(_ context.Context, projectId string, categoryId string, task ProjectTask) (ProjectTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].Id != projectId {
			continue
		}
		for j := range r.projects[i].Categories {
			if r.projects[i].Categories[j].Id == categoryId {
				r.projects[i].Categories[j].Tasks = append(r.projects[i].Categories[j].Tasks, task)
				return task, nil
			}
		}
		return ProjectTask{}, ErrCategoryNotFound
	}
	return ProjectTask{}, ErrProjectNotFound
}

func (r *RepositoryStub) ToggleTask(_ context.Context, projectId string, categoryId string, taskId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.findTask(projectId, categoryId, taskId)
	if task == nil {
		return false, nil
	}
	task.IsCompleted = !task.IsCompleted
	return true, nil
}

func (r *RepositoryStub) DeleteTask(_ context.Context, projectId string, categoryId string, taskId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].Id != projectId {
			continue
		}
		for j := range r.projects[i].Categories {
			if r.projects[i].Categories[j].Id != categoryId {
				continue
			}
			tasks := r.projects[i].Categories[j].Tasks
			for k, task := range tasks {
				if task.Id == taskId {
					r.projects[i].Categories[j].Tasks = append(tasks[:k], tasks[k+1:]...)
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = nil
}

func (r *RepositoryStub) findTask(projectId, categoryId, taskId string) *ProjectTask {
	for i := range r.projects {
		if r.projects[i].Id != projectId {
			continue
		}
		for j := range r.projects[i].Categories {
			if r.projects[i].Categories[j].Id != categoryId {
				continue
			}
			for k := range r.projects[i].Categories[j].Tasks {
				if r.projects[i].Categories[j].Tasks[k].Id == taskId {
					return &r.projects[i].Categories[j].Tasks[k]
				}
			}
		}
	}
	return nil
}

func cloneProjects(projects []ProjectPlan) []ProjectPlan {
	cloned := make([]ProjectPlan, 0, len(projects))
	for _, project := range projects {
		cloned = append(cloned, cloneProject(project))
	}
	return cloned
}

func cloneProject(project ProjectPlan) ProjectPlan {
	clone := project
	clone.Categories = make([]ProjectCategory, 0, len(project.Categories))
	for _, category := range project.Categories {
		clone.Categories = append(clone.Categories, cloneCategory(category))
	}
	return clone
}

func cloneCategory(category ProjectCategory) ProjectCategory {
	clone := category
	clone.Tasks = make([]ProjectTask, len(category.Tasks))
	copy(clone.Tasks, category.Tasks)
	return clone
}
