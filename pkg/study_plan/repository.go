package study_plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error)
	GetPlan(ctx context.Context, id string) (StudyPlan, error)
	ListPlans(ctx context.Context) ([]StudyPlan, error)
	DeletePlan(ctx context.Context, id string) (bool, error)
	// DeleteAllPlans removes every plan and its tasks. Used by backup import.
	DeleteAllPlans(ctx context.Context) (int, error)
	// ToggleTask flips the completion flag of the task on the given date.
	// Returns false when no task matches the date.
	ToggleTask(ctx context.Context, planId string, date time.Time) (bool, error)
	// AddTaskMinutes adds minutes to the matching task. Returns false when no
	// task matches the date.
	AddTaskMinutes(ctx context.Context, planId string, date time.Time, minutes int) (bool, error)
	// AddPlanMinutes adds minutes to the plan-level total.
	AddPlanMinutes(ctx context.Context, planId string, minutes int) (bool, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepo(db *pgxpool.Pool) Repository {
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

func (r *repositoryImpl) CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error) {
	query := `INSERT INTO study_plan (
				id, subject, category, color, start_date, end_date,
				total_pages, frequency_per_week, total_minutes, ai_advice
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.getQueryer().Exec(ctx, query,
		plan.Id,
		plan.Subject,
		plan.Category,
		plan.Color,
		plan.StartDate,
		plan.EndDate,
		plan.TotalPages,
		plan.FrequencyPerWeek,
		plan.TotalMinutes,
		plan.AiAdvice,
	)
	if err != nil {
		return StudyPlan{}, fmt.Errorf("could not store plan: %w", err)
	}

	if err := r.insertTasks(ctx, plan.Id, plan.Tasks); err != nil {
		return StudyPlan{}, err
	}
	plan.CompletedPages = completedPagesOf(plan.Tasks)
	return plan, nil
}

func (r *repositoryImpl) insertTasks(ctx context.Context, planId string, tasks []DailyTask) error {
	if len(tasks) == 0 {
		return nil
	}

	var valuesBuilder strings.Builder
	args := make([]any, 0, len(tasks)*6)
	placeholder := 1
	for idx, task := range tasks {
		if idx > 0 {
			valuesBuilder.WriteByte(',')
		}
		valuesBuilder.WriteString("(")
		for i := 0; i < 6; i++ {
			if i > 0 {
				valuesBuilder.WriteByte(',')
			}
			fmt.Fprintf(&valuesBuilder, "$%d", placeholder)
			placeholder++
		}
		valuesBuilder.WriteString(")")

		args = append(args,
			planId,
			task.Date,
			task.PagesToRead,
			task.IsRestDay,
			task.IsCompleted,
			task.MinutesSpent,
		)
	}

	query := fmt.Sprintf(`INSERT INTO daily_task (
							plan_id, date, pages_to_read, is_rest_day, is_completed, minutes_spent
						  ) VALUES %s`, valuesBuilder.String())
	if _, err := r.getQueryer().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("could not store tasks: %w", err)
	}
	return nil
}

func (r *repositoryImpl) GetPlan(ctx context.Context, id string) (StudyPlan, error) {
	query := `SELECT
				plan.id,
				plan.subject,
				plan.category,
				plan.color,
				plan.start_date,
				plan.end_date,
				plan.total_pages,
				plan.frequency_per_week,
				plan.total_minutes,
				plan.ai_advice
			  FROM study_plan plan WHERE plan.id = $1`
	var plan StudyPlan
	err := r.getQueryer().QueryRow(ctx, query, id).Scan(
		&plan.Id,
		&plan.Subject,
		&plan.Category,
		&plan.Color,
		&plan.StartDate,
		&plan.EndDate,
		&plan.TotalPages,
		&plan.FrequencyPerWeek,
		&plan.TotalMinutes,
		&plan.AiAdvice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StudyPlan{}, ErrPlanNotFound
		}
		return StudyPlan{}, fmt.Errorf("could not read plan: %w", err)
	}
	plan.StartDate = Date(plan.StartDate)
	plan.EndDate = Date(plan.EndDate)

	tasks, err := r.tasksByPlan(ctx, id)
	if err != nil {
		return StudyPlan{}, err
	}
	plan.Tasks = tasks
	plan.CompletedPages = completedPagesOf(tasks)
	return plan, nil
}

func (r *repositoryImpl) tasksByPlan(ctx context.Context, planId string) ([]DailyTask, error) {
	query := `SELECT
				task.date,
				task.pages_to_read,
				task.is_rest_day,
				task.is_completed,
				task.minutes_spent
			  FROM daily_task task
			  WHERE task.plan_id = $1
			  ORDER BY task.date`
	rows, err := r.getQueryer().Query(ctx, query, planId)
	if err != nil {
		return nil, fmt.Errorf("could not read tasks: %w", err)
	}
	defer rows.Close()

	var tasks []DailyTask
	for rows.Next() {
		var task DailyTask
		if err := rows.Scan(
			&task.Date,
			&task.PagesToRead,
			&task.IsRestDay,
			&task.IsCompleted,
			&task.MinutesSpent,
		); err != nil {
			return nil, err
		}
		task.Date = Date(task.Date)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *repositoryImpl) ListPlans(ctx context.Context) ([]StudyPlan, error) {
	query := `SELECT
				plan.id,
				plan.subject,
				plan.category,
				plan.color,
				plan.start_date,
				plan.end_date,
				plan.total_pages,
				plan.frequency_per_week,
				plan.total_minutes,
				plan.ai_advice
			  FROM study_plan plan
			  ORDER BY plan.created_at DESC`
	rows, err := r.getQueryer().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list plans: %w", err)
	}
	defer rows.Close()

	var plans []StudyPlan
	for rows.Next() {
		var plan StudyPlan
		if err := rows.Scan(
			&plan.Id,
			&plan.Subject,
			&plan.Category,
			&plan.Color,
			&plan.StartDate,
			&plan.EndDate,
			&plan.TotalPages,
			&plan.FrequencyPerWeek,
			&plan.TotalMinutes,
			&plan.AiAdvice,
		); err != nil {
			return nil, err
		}
		plan.StartDate = Date(plan.StartDate)
		plan.EndDate = Date(plan.EndDate)
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		tasks, err := r.tasksByPlan(ctx, plans[i].Id)
		if err != nil {
			return nil, err
		}
		plans[i].Tasks = tasks
		plans[i].CompletedPages = completedPagesOf(tasks)
	}
	return plans, nil
}

func (r *repositoryImpl) DeletePlan(ctx context.Context, id string) (bool, error) {
	// daily_task rows go away via ON DELETE CASCADE
	result, err := r.getQueryer().Exec(ctx, `DELETE FROM study_plan WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("could not delete plan: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *repositoryImpl) DeleteAllPlans(ctx context.Context) (int, error) {
	result, err := r.getQueryer().Exec(ctx, `DELETE FROM study_plan`)
	if err != nil {
		return 0, fmt.Errorf("could not delete plans: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *repositoryImpl) ToggleTask(ctx context.Context, planId string, date time.Time) (bool, error) {
	query := `UPDATE daily_task SET is_completed = NOT is_completed
			  WHERE plan_id = $1 AND date = $2`
	result, err := r.getQueryer().Exec(ctx, query, planId, date)
	if err != nil {
		return false, fmt.Errorf("could not toggle task: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *repositoryImpl) AddTaskMinutes(ctx context.Context, planId string, date time.Time, minutes int) (bool, error) {
	query := `UPDATE daily_task SET minutes_spent = minutes_spent + $3
			  WHERE plan_id = $1 AND date = $2`
	result, err := r.getQueryer().Exec(ctx, query, planId, date, minutes)
	if err != nil {
		return false, fmt.Errorf("could not add task minutes: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *repositoryImpl) AddPlanMinutes(ctx context.Context, planId string, minutes int) (bool, error) {
	query := `UPDATE study_plan SET total_minutes = total_minutes + $2 WHERE id = $1`
	result, err := r.getQueryer().Exec(ctx, query, planId, minutes)
	if err != nil {
		return false, fmt.Errorf("could not add plan minutes: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
