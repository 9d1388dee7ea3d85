package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTaskNotFound     = errors.New("task not found")
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	CreateProject(ctx context.Context, project ProjectPlan) (ProjectPlan, error)
	GetProject(ctx context.Context, projectId string) (ProjectPlan, error)
	ListProjects(ctx context.Context) ([]ProjectPlan, error)
	DeleteProject(ctx context.Context, projectId string) (bool, error)
	// DeleteAllProjects removes every project with its categories and tasks.
	// Used by backup import.
	DeleteAllProjects(ctx context.Context) (int, error)
	CreateCategory(ctx context.Context, projectId string, category ProjectCategory) (ProjectCategory, error)
	DeleteCategory(ctx context.Context, projectId string, categoryId string) (bool, error)
	CreateTask(ctx context.Context, projectId string, categoryId string, task ProjectTask) (ProjectTask, error)
	// ToggleTask flips the completion flag of a task within the given project
	// and category. Returns false when no such task exists.
	ToggleTask(ctx context.Context, projectId string, categoryId string, taskId string) (bool, error)
	DeleteTask(ctx context.Context, projectId string, categoryId string, taskId string) (bool, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *repositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &repositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *repositoryImpl) CreateProject(ctx context.Context, project ProjectPlan) (ProjectPlan, error) {
	_, err := r.getQueryer().Exec(ctx,
		`INSERT INTO project_plan (id, title) VALUES ($1, $2)`,
		project.Id, project.Title,
	)
	if err != nil {
		log.Errorf("Error creating project: %v", err)
		return ProjectPlan{}, err
	}
	for _, category := range project.Categories {
		if _, err := r.createCategory(ctx, project.Id, category); err != nil {
			return ProjectPlan{}, err
		}
	}
	return project, nil
}

func (r *repositoryImpl) createCategory(ctx context.Context, projectId string, category ProjectCategory) (ProjectCategory, error) {
	_, err := r.getQueryer().Exec(ctx,
		`INSERT INTO project_category (id, project_id, name) VALUES ($1, $2, $3)`,
		category.Id, projectId, category.Name,
	)
	if err != nil {
		log.Errorf("Error creating project category: %v", err)
		return ProjectCategory{}, err
	}
	for _, task := range category.Tasks {
		_, err := r.getQueryer().Exec(ctx,
			`INSERT INTO project_task (id, category_id, name, deadline, is_completed)
			 VALUES ($1, $2, $3, $4, $5)`,
			task.Id, category.Id, task.Name, task.Deadline, task.IsCompleted,
		)
		if err != nil {
			log.Errorf("Error creating project task: %v", err)
			return ProjectCategory{}, err
		}
	}
	return category, nil
}

func (r *repositoryImpl) GetProject(ctx context.Context, projectId string) (ProjectPlan, error) {
	var project ProjectPlan
	err := r.getQueryer().QueryRow(ctx,
		`SELECT id, title FROM project_plan WHERE id = $1`, projectId,
	).Scan(&project.Id, &project.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProjectPlan{}, ErrProjectNotFound
		}
		log.Errorf("Error getting project: %v", err)
		return ProjectPlan{}, err
	}

	categories, err := r.categoriesByProject(ctx, projectId)
	if err != nil {
		return ProjectPlan{}, err
	}
	project.Categories = categories
	return project, nil
}

func (r *repositoryImpl) categoriesByProject(ctx context.Context, projectId string) ([]ProjectCategory, error) {
	rows, err := r.getQueryer().Query(ctx,
		`SELECT id, name FROM project_category WHERE project_id = $1 ORDER BY seq`, projectId,
	)
	if err != nil {
		log.Errorf("Error listing project categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]ProjectCategory, 0)
	for rows.Next() {
		var category ProjectCategory
		if err := rows.Scan(&category.Id, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		tasks, err := r.tasksByCategory(ctx, categories[i].Id)
		if err != nil {
			return nil, err
		}
		categories[i].Tasks = tasks
	}
	return categories, nil
}

func (r *repositoryImpl) tasksByCategory(ctx context.Context, categoryId string) ([]ProjectTask, error) {
	rows, err := r.getQueryer().Query(ctx,
		`SELECT id, name, deadline, is_completed
		 FROM project_task WHERE category_id = $1 ORDER BY seq`, categoryId,
	)
	if err != nil {
		log.Errorf("Error listing project tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	tasks := make([]ProjectTask, 0)
	for rows.Next() {
		var task ProjectTask
		if err := rows.Scan(&task.Id, &task.Name, &task.Deadline, &task.IsCompleted); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ListProjects returns projects newest-first with their full hierarchies.
func (r *repositoryImpl) ListProjects(ctx context.Context) ([]ProjectPlan, error) {
	rows, err := r.getQueryer().Query(ctx,
		`SELECT id, title FROM project_plan ORDER BY seq DESC`,
	)
	if err != nil {
		log.Errorf("Error listing projects: %v", err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]ProjectPlan, 0)
	for rows.Next() {
		var project ProjectPlan
		if err := rows.Scan(&project.Id, &project.Title); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		categories, err := r.categoriesByProject(ctx, projects[i].Id)
		if err != nil {
			return nil, err
		}
		projects[i].Categories = categories
	}
	return projects, nil
}

func (r *repositoryImpl) DeleteProject(ctx context.Context, projectId string) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx, `DELETE FROM project_plan WHERE id = $1`, projectId)
	if err != nil {
		log.Errorf("Error deleting project: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repositoryImpl) DeleteAllProjects(ctx context.Context) (int, error) {
	tag, err := r.getQueryer().Exec(ctx, `DELETE FROM project_plan`)
	if err != nil {
		log.Errorf("Error clearing projects: %v", err)
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *repositoryImpl) CreateCategory(ctx context.Context, projectId string, category ProjectCategory) (ProjectCategory, error) {
	if _, err := r.GetProject(ctx, projectId); err != nil {
		return ProjectCategory{}, err
	}
	return r.createCategory(ctx, projectId, category)
}

func (r *repositoryImpl) DeleteCategory(ctx context.Context, projectId string, categoryId string) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx,
		`DELETE FROM project_category WHERE id = $1 AND project_id = $2`,
		categoryId, projectId,
	)
	if err != nil {
		log.Errorf("Error deleting project category: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repositoryImpl) CreateTask(ctx context.Context, projectId string, categoryId string, task ProjectTask) (ProjectTask, error) {
	var exists bool
	err := r.getQueryer().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM project_category WHERE id = $1 AND project_id = $2)`,
		categoryId, projectId,
	).Scan(&exists)
	if err != nil {
		log.Errorf("Error checking project category: %v", err)
		return ProjectTask{}, err
	}
	if !exists {
		return ProjectTask{}, ErrCategoryNotFound
	}

	_, err = r.getQueryer().Exec(ctx,
		`INSERT INTO project_task (id, category_id, name, deadline, is_completed)
		 VALUES ($1, $2, $3, $4, $5)`,
		task.Id, categoryId, task.Name, task.Deadline, task.IsCompleted,
	)
	if err != nil {
		log.Errorf("Error creating project task: %v", err)
		return ProjectTask{}, err
	}
	return task, nil
}

func (r *repositoryImpl) ToggleTask(ctx context.Context, projectId string, categoryId string, taskId string) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx,
		`UPDATE project_task t
		 SET is_completed = NOT is_completed
		 FROM project_category c
		 WHERE t.id = $1 AND t.category_id = c.id AND c.id = $2 AND c.project_id = $3`,
		taskId, categoryId, projectId,
	)
	if err != nil {
		log.Errorf("Error toggling project task: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repositoryImpl) DeleteTask(ctx context.Context, projectId string, categoryId string, taskId string) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx,
		`DELETE FROM project_task t
		 USING project_category c
		 WHERE t.id = $1 AND t.category_id = c.id AND c.id = $2 AND c.project_id = $3`,
		taskId, categoryId, projectId,
	)
	if err != nil {
		log.Errorf("Error deleting project task: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
