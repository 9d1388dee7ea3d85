package study_plan

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu    sync.Mutex
	plans map[string]StudyPlan // id -> plan with tasks
	order []string             // insertion order, newest first on list
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		plans: make(map[string]StudyPlan),
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = make(map[string]StudyPlan)
	r.order = nil
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	originalPlans := make(map[string]StudyPlan, len(r.plans))
	for k, v := range r.plans {
		copied := v
		copied.Tasks = append([]DailyTask(nil), v.Tasks...)
		originalPlans[k] = copied
	}
	originalOrder := append([]string(nil), r.order...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.plans = originalPlans
		r.order = originalOrder
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := plan
	stored.Tasks = append([]DailyTask(nil), plan.Tasks...)
	sort.Slice(stored.Tasks, func(i, j int) bool {
		return stored.Tasks[i].Date.Before(stored.Tasks[j].Date)
	})
	r.plans[plan.Id] = stored
	r.order = append([]string{plan.Id}, r.order...)

	plan.CompletedPages = completedPagesOf(plan.Tasks)
	return plan, nil
}

func (r *RepositoryStub) GetPlan(ctx context.Context, id string) (StudyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return StudyPlan{}, ErrPlanNotFound
	}
	result := plan
	result.Tasks = append([]DailyTask(nil), plan.Tasks...)
	result.CompletedPages = completedPagesOf(result.Tasks)
	return result, nil
}

func (r *RepositoryStub) ListPlans(ctx context.Context) ([]StudyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var plans []StudyPlan
	for _, id := range r.order {
		plan := r.plans[id]
		result := plan
		result.Tasks = append([]DailyTask(nil), plan.Tasks...)
		result.CompletedPages = completedPagesOf(result.Tasks)
		plans = append(plans, result)
	}
	return plans, nil
}

func (r *RepositoryStub) DeletePlan(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return false, nil
	}
	delete(r.plans, id)
	for i, planId := range r.order {
		if planId == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *RepositoryStub) DeleteAllPlans(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.plans)
	r.plans = make(map[string]StudyPlan)
	r.order = nil
	return count, nil
}

func (r *RepositoryStub) ToggleTask(ctx context.Context, planId string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[planId]
	if !ok {
		return false, nil
	}
	for i := range plan.Tasks {
		if plan.Tasks[i].Date.Equal(date) {
			plan.Tasks[i].IsCompleted = !plan.Tasks[i].IsCompleted
			r.plans[planId] = plan
			return true, nil
		}
	}
	return false, nil
}

func (r *RepositoryStub) AddTaskMinutes(ctx context.Context, planId string, date time.Time, minutes int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[planId]
	if !ok {
		return false, nil
	}
	for i := range plan.Tasks {
		if plan.Tasks[i].Date.Equal(date) {
			plan.Tasks[i].MinutesSpent += minutes
			r.plans[planId] = plan
			return true, nil
		}
	}
	return false, nil
}

func (r *RepositoryStub) AddPlanMinutes(ctx context.Context, planId string, minutes int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[planId]
	if !ok {
		return false, nil
	}
	plan.TotalMinutes += minutes
	r.plans[planId] = plan
	return true, nil
}
