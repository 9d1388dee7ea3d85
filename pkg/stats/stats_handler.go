package stats

import (
	"encoding/json"
	"net/http"

	"github.com/studyflow/studyflow/pkg/study_plan"
)

type DailyFocusDTO struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type PlanFocusDTO struct {
	PlanId          string `json:"planId"`
	Subject         string `json:"subject"`
	Color           string `json:"color,omitempty"`
	WeeklyMinutes   int    `json:"weeklyMinutes"`
	TotalMinutes    int    `json:"totalMinutes"`
	ProgressPercent int    `json:"progressPercent"`
}

type WeeklyReportDTO struct {
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Days           []DailyFocusDTO `json:"days"`
	WeeklyMinutes  int             `json:"weeklyMinutes"`
	DailyAverage   int             `json:"dailyAverage"`
	ActiveSubjects int             `json:"activeSubjects"`
	Plans          []PlanFocusDTO  `json:"plans"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetWeeklyReport godoc
// @Summary Weekly focus report over the trailing seven days
// @Description Returns JSON by default; send "Accept: text/csv" for the CSV rendering
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Success 200 {object} WeeklyReportDTO
// @Router /api/stats/weekly [get]
func (handler *StatsHandler) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	report, err := handler.statsService.GetWeeklyReport(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderReport(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(&report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func convertToJsonResponse(report *WeeklyReport) *WeeklyReportDTO {
	days := make([]DailyFocusDTO, 0, len(report.Days))
	for _, day := range report.Days {
		days = append(days, DailyFocusDTO{
			Date:    day.Date.Format(study_plan.DateLayout),
			Minutes: day.Minutes,
		})
	}
	plans := make([]PlanFocusDTO, 0, len(report.Plans))
	for _, plan := range report.Plans {
		plans = append(plans, PlanFocusDTO{
			PlanId:          plan.PlanId,
			Subject:         plan.Subject,
			Color:           plan.Color,
			WeeklyMinutes:   plan.WeeklyMinutes,
			TotalMinutes:    plan.TotalMinutes,
			ProgressPercent: plan.ProgressPercent,
		})
	}
	return &WeeklyReportDTO{
		StartDate:      report.StartDate.Format(study_plan.DateLayout),
		EndDate:        report.EndDate.Format(study_plan.DateLayout),
		Days:           days,
		WeeklyMinutes:  report.WeeklyMinutes,
		DailyAverage:   report.DailyAverage,
		ActiveSubjects: report.ActiveSubjects,
		Plans:          plans,
	}
}
