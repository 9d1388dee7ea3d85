package backup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflow/studyflow/internal/utils"
	"github.com/studyflow/studyflow/pkg/project"
	"github.com/studyflow/studyflow/pkg/study_plan"
)

func newHandlerFixture() (*Handler, *study_plan.RepositoryStub, *project.RepositoryStub) {
	planRepo := study_plan.NewRepositoryStub()
	projectRepo := project.NewRepositoryStub()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)}
	return NewHandler(NewService(planRepo, projectRepo, clock)), planRepo, projectRepo
}

func TestHandlerImport(t *testing.T) {
	t.Run("accepts a well-formed document", func(t *testing.T) {
		handler, planRepo, _ := newHandlerFixture()

		body := `{
			"plans": [{
				"id": "plan-1", "subject": "Algebra", "startDate": "2025-01-06",
				"endDate": "2025-01-12", "totalPages": 30, "frequencyPerWeek": 3,
				"tasks": [{"date": "2025-01-06", "pagesToRead": 10, "isRestDay": false,
						   "isCompleted": true, "minutesSpent": 25}]
			}],
			"projects": []
		}`
		rec := httptest.NewRecorder()
		handler.Import(rec, httptest.NewRequest(http.MethodPost, "/api/backup", strings.NewReader(body)))

		assert.Equal(t, http.StatusNoContent, rec.Code)

		plan, err := planRepo.GetPlan(context.Background(), "plan-1")
		require.NoError(t, err)
		assert.True(t, plan.Tasks[0].IsCompleted)
	})

	t.Run("rejects a document missing the plans key", func(t *testing.T) {
		handler, planRepo, _ := newHandlerFixture()
		seedPlan(t, planRepo)

		rec := httptest.NewRecorder()
		handler.Import(rec, httptest.NewRequest(http.MethodPost, "/api/backup",
			strings.NewReader(`{"projects": []}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertStateUntouched(t, planRepo)
	})

	t.Run("rejects a document missing the projects key", func(t *testing.T) {
		handler, planRepo, _ := newHandlerFixture()
		seedPlan(t, planRepo)

		rec := httptest.NewRecorder()
		handler.Import(rec, httptest.NewRequest(http.MethodPost, "/api/backup",
			strings.NewReader(`{"plans": []}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertStateUntouched(t, planRepo)
	})

	t.Run("rejects invalid syntax", func(t *testing.T) {
		handler, planRepo, _ := newHandlerFixture()
		seedPlan(t, planRepo)

		rec := httptest.NewRecorder()
		handler.Import(rec, httptest.NewRequest(http.MethodPost, "/api/backup",
			strings.NewReader(`{"plans": [`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertStateUntouched(t, planRepo)
	})

	t.Run("rejects a plan with an unparseable date", func(t *testing.T) {
		handler, planRepo, _ := newHandlerFixture()
		seedPlan(t, planRepo)

		body := `{
			"plans": [{"id": "plan-2", "subject": "X", "startDate": "not-a-date",
					   "endDate": "2025-01-12", "totalPages": 10, "frequencyPerWeek": 3, "tasks": []}],
			"projects": []
		}`
		rec := httptest.NewRecorder()
		handler.Import(rec, httptest.NewRequest(http.MethodPost, "/api/backup", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertStateUntouched(t, planRepo)
	})
}

func TestHandlerExport(t *testing.T) {
	handler, planRepo, projectRepo := newHandlerFixture()
	seedPlan(t, planRepo)
	_, err := projectRepo.CreateProject(context.Background(), project.ProjectPlan{Id: "proj-1", Title: "Thesis"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/api/backup", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var doc DocumentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Plans, 1)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "seed-plan", doc.Plans[0].Id)
	assert.Equal(t, "2025-01-12T10:00:00Z", doc.ExportDate.Format(time.RFC3339))
}

func seedPlan(t *testing.T, planRepo *study_plan.RepositoryStub) {
	t.Helper()
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	_, err := planRepo.CreatePlan(context.Background(), study_plan.StudyPlan{
		Id:               "seed-plan",
		Subject:          "Algebra",
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, 6),
		TotalPages:       30,
		FrequencyPerWeek: 3,
		Tasks:            study_plan.BuildTasks(start, start.AddDate(0, 0, 6), 30, 3),
	})
	require.NoError(t, err)
}

func assertStateUntouched(t *testing.T, planRepo *study_plan.RepositoryStub) {
	t.Helper()
	plans, err := planRepo.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "seed-plan", plans[0].Id)
}
