package timetable

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	rest "github.com/studyflow/studyflow/internal/rest"
)

type FixedEventDTO struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Color     string `json:"color,omitempty"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsAI      bool   `json:"isAI"`
}

type GridSlotDTO struct {
	EventId string `json:"eventId"`
	Title   string `json:"title"`
	Color   string `json:"color,omitempty"`
	IsAI    bool   `json:"isAI"`
}

// GridDTO indexes slots by day (0=Sunday) then hour; empty cells are null.
type GridDTO struct {
	Slots [7][24]*GridSlotDTO `json:"slots"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// AddEvent godoc
// @Summary Add a weekly fixed event
// @Tags Timetable
// @Accept json
// @Produce json
// @Param event body object{title=string,color=string,dayOfWeek=int,startTime=string,endTime=string} true "Event details"
// @Success 201 {object} FixedEventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event parameters"
// @Router /api/timetable/event [post]
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var createDTO struct {
		Title     string `json:"title"`
		Color     string `json:"color"`
		DayOfWeek int    `json:"dayOfWeek"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	event, err := h.service.AddEvent(r.Context(), FixedEvent{
		Title:     createDTO.Title,
		Color:     createDTO.Color,
		DayOfWeek: createDTO.DayOfWeek,
		StartTime: createDTO.StartTime,
		EndTime:   createDTO.EndTime,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrInvalidDay) || errors.Is(err, ErrInvalidTime) || errors.Is(err, ErrInvalidTimeRange) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(FixedEventToDTO(event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListEvents godoc
// @Summary List all weekly fixed events
// @Tags Timetable
// @Produce json
// @Success 200 {array} FixedEventDTO
// @Router /api/timetable/event [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	eventsDTO := make([]FixedEventDTO, 0, len(events))
	for _, event := range events {
		eventsDTO = append(eventsDTO, FixedEventToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(eventsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEvent godoc
// @Summary Delete one event from the weekly timetable
// @Tags Timetable
// @Param eventId path string true "Event ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Event Not Found"
// @Router /api/timetable/event/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.service.DeleteEvent(r.Context(), vars["eventId"])
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearAll godoc
// @Summary Remove all events from the weekly timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} object{deleted=int}
// @Router /api/timetable/event [delete]
func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	deleted, err := h.service.ClearAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(map[string]int{"deleted": deleted}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetGrid godoc
// @Summary Get the resolved hour-by-weekday grid
// @Description Builds the weekly grid from all events; overlaps resolve to the latest event
// @Tags Timetable
// @Produce json
// @Success 200 {object} GridDTO
// @Router /api/timetable/grid [get]
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	grid, err := h.service.GetGrid(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(GridToDTO(grid)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ScheduleFromText godoc
// @Summary Generate study blocks from free-form availability text
// @Description Asks the advisory collaborator for study blocks fitting around existing events and stores them as AI events
// @Tags Timetable
// @Accept json
// @Produce json
// @Param body body object{text=string} true "Availability description"
// @Success 201 {array} FixedEventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/timetable/schedule [post]
func (h *Handler) ScheduleFromText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var scheduleDTO struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&scheduleDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.ScheduleFromText(r.Context(), scheduleDTO.Text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	createdDTO := make([]FixedEventDTO, 0, len(created))
	for _, event := range created {
		createdDTO = append(createdDTO, FixedEventToDTO(event))
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createdDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func FixedEventToDTO(event FixedEvent) FixedEventDTO {
	return FixedEventDTO{
		Id:        event.Id,
		Title:     event.Title,
		Color:     event.Color,
		DayOfWeek: event.DayOfWeek,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		IsAI:      event.IsAI,
	}
}

func GridToDTO(grid Grid) GridDTO {
	var dto GridDTO
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if slot, ok := grid.Lookup(day, hour); ok {
				dto.Slots[day][hour] = &GridSlotDTO{
					EventId: slot.EventId,
					Title:   slot.Title,
					Color:   slot.Color,
					IsAI:    slot.IsAI,
				}
			}
		}
	}
	return dto
}
