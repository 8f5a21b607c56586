package handlers

import (
	"net/http"
	"time"

	"github.com/shuttlehub/club-system/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input services.ScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	dates, err := h.scheduleService.UpcomingDates(time.Now(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"dates": dates}, nil)
}

func (h *ScheduleHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var input services.ScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	sessions, err := h.scheduleService.CreateRecurring(r.Context(), time.Now(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"sessions": sessions}, nil)
}
