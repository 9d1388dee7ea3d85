package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	projectRepoStub = NewRepositoryStub()
	projectService  = NewService(projectRepoStub)
)

func setup(t *testing.T) func() {
	return func() {
		projectRepoStub.Reset()
	}
}

func TestCreateProject(t *testing.T) {
	t.Run("creates an empty project", func(t *testing.T) {
		defer setup(t)()

		created, err := projectService.CreateProject(context.Background(), "Thesis")

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "Thesis", created.Title)
		assert.Empty(t, created.Categories)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		defer setup(t)()

		_, err := projectService.CreateProject(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("lists newest project first", func(t *testing.T) {
		defer setup(t)()

		_, err := projectService.CreateProject(context.Background(), "First")
		require.NoError(t, err)
		_, err = projectService.CreateProject(context.Background(), "Second")
		require.NoError(t, err)

		projects, err := projectService.ListProjects(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Second", projects[0].Title)
		assert.Equal(t, "First", projects[1].Title)
	})
}

func TestDeleteProject(t *testing.T) {
	defer setup(t)()

	created, err := projectService.CreateProject(context.Background(), "Thesis")
	require.NoError(t, err)

	require.NoError(t, projectService.DeleteProject(context.Background(), created.Id))

	projects, err := projectService.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)

	err = projectService.DeleteProject(context.Background(), created.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestAddCategory(t *testing.T) {
	t.Run("appends categories in order", func(t *testing.T) {
		defer setup(t)()

		created, err := projectService.CreateProject(context.Background(), "Thesis")
		require.NoError(t, err)

		_, err = projectService.AddCategory(context.Background(), created.Id, "Research")
		require.NoError(t, err)
		_, err = projectService.AddCategory(context.Background(), created.Id, "Writing")
		require.NoError(t, err)

		projects, err := projectService.ListProjects(context.Background())
		require.NoError(t, err)
		require.Len(t, projects[0].Categories, 2)
		assert.Equal(t, "Research", projects[0].Categories[0].Name)
		assert.Equal(t, "Writing", projects[0].Categories[1].Name)
	})

	t.Run("rejects an unknown project", func(t *testing.T) {
		defer setup(t)()

		_, err := projectService.AddCategory(context.Background(), "missing", "Research")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		defer setup(t)()

		created, err := projectService.CreateProject(context.Background(), "Thesis")
		require.NoError(t, err)

		_, err = projectService.AddCategory(context.Background(), created.Id, "")
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestProjectTasks(t *testing.T) {
	deadline := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	createProjectWithCategory := func(t *testing.T) (ProjectPlan, ProjectCategory) {
		created, err := projectService.CreateProject(context.Background(), "Thesis")
		require.NoError(t, err)
		category, err := projectService.AddCategory(context.Background(), created.Id, "Research")
		require.NoError(t, err)
		return created, category
	}

	t.Run("adds a task as not completed", func(t *testing.T) {
		defer setup(t)()
		created, category := createProjectWithCategory(t)

		task, err := projectService.AddTask(context.Background(), created.Id, category.Id, ProjectTask{
			Name:        "Collect sources",
			Deadline:    deadline,
			IsCompleted: true, // caller cannot pre-complete a task
		})

		require.NoError(t, err)
		assert.NotEmpty(t, task.Id)
		assert.False(t, task.IsCompleted)
		assert.Equal(t, deadline, task.Deadline)
	})

	t.Run("rejects a task for an unknown category", func(t *testing.T) {
		defer setup(t)()
		created, _ := createProjectWithCategory(t)

		_, err := projectService.AddTask(context.Background(), created.Id, "missing", ProjectTask{
			Name: "Collect sources", Deadline: deadline,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("toggle flips completion and is idempotent over two calls", func(t *testing.T) {
		defer setup(t)()
		created, category := createProjectWithCategory(t)

		task, err := projectService.AddTask(context.Background(), created.Id, category.Id, ProjectTask{
			Name: "Collect sources", Deadline: deadline,
		})
		require.NoError(t, err)

		updated, err := projectService.ToggleTask(context.Background(), created.Id, category.Id, task.Id)
		require.NoError(t, err)
		assert.True(t, updated.Categories[0].Tasks[0].IsCompleted)

		updated, err = projectService.ToggleTask(context.Background(), created.Id, category.Id, task.Id)
		require.NoError(t, err)
		assert.False(t, updated.Categories[0].Tasks[0].IsCompleted)
	})

	t.Run("toggle on an unknown task is an error", func(t *testing.T) {
		defer setup(t)()
		created, category := createProjectWithCategory(t)

		_, err := projectService.ToggleTask(context.Background(), created.Id, category.Id, "missing")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		defer setup(t)()
		created, category := createProjectWithCategory(t)

		task, err := projectService.AddTask(context.Background(), created.Id, category.Id, ProjectTask{
			Name: "Collect sources", Deadline: deadline,
		})
		require.NoError(t, err)

		require.NoError(t, projectService.DeleteTask(context.Background(), created.Id, category.Id, task.Id))

		projects, err := projectService.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Empty(t, projects[0].Categories[0].Tasks)
	})
}

func TestDeleteCategory(t *testing.T) {
	defer setup(t)()

	created, err := projectService.CreateProject(context.Background(), "Thesis")
	require.NoError(t, err)
	category, err := projectService.AddCategory(context.Background(), created.Id, "Research")
	require.NoError(t, err)

	require.NoError(t, projectService.DeleteCategory(context.Background(), created.Id, category.Id))

	err = projectService.DeleteCategory(context.Background(), created.Id, category.Id)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
