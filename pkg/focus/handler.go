package focus

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	rest "github.com/studyflow/studyflow/internal/rest"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CompleteSession godoc
// @Summary Record a completed focus session
// @Description Credits the focused minutes to the plan's schedule for the given date
// @Tags Focus
// @Accept json
// @Param session body object{planId=string,date=string,minutes=int} true "Session details"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid session parameters"
// @Router /api/focus/session [post]
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	var sessionDTO struct {
		PlanId  string `json:"planId"`
		Date    string `json:"date"`
		Minutes int    `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&sessionDTO); err != nil {
		writeError(w, "Invalid request body format", "")
		return
	}

	date, err := time.Parse(dateLayout, sessionDTO.Date)
	if err != nil {
		writeError(w, "Incorrect date format", "Dates must be in YYYY-MM-DD format")
		return
	}

	err = h.service.CompleteSession(r.Context(), Session{
		PlanId:  sessionDTO.PlanId,
		Date:    date,
		Minutes: sessionDTO.Minutes,
	})
	if err != nil {
		if errors.Is(err, ErrNegativeMinutes) {
			writeError(w, err.Error(), "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
