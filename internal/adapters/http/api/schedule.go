// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
)

// ScheduleHandler serves the generated schedule.
type ScheduleHandler struct {
	provider ScheduleProvider
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(provider ScheduleProvider) *ScheduleHandler {
	return &ScheduleHandler{provider: provider}
}

// dayResponse mirrors the report columns, one object per day.
type dayResponse struct {
	Note     string `json:"note"`
	CivDate  string `json:"civ_date"`
	Weekday  string `json:"weekday"`
	HebDate  string `json:"heb_date"`
	Shachris string `json:"shachris"`
	Shema    string `json:"shema"`
	Mincha   string `json:"mincha"`
	Maariv   string `json:"maariv"`
	Candles  string `json:"candles,omitempty"`
	Ending   string `json:"ending,omitempty"`
}

// HandleGetSchedule handles GET /api/v1/schedule requests. It returns 503
// until the first generation has completed.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}

	days := h.provider.Schedule()
	if days == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "schedule not generated yet")
		return
	}

	resp := make([]dayResponse, 0, len(days))
	for _, d := range days {
		resp = append(resp, toDayResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toDayResponse(d *model.Day) dayResponse {
	return dayResponse{
		Note:     d.Reason,
		CivDate:  d.Date.Format("2006/01/02"),
		Weekday:  d.Weekday,
		HebDate:  d.HebDate,
		Shachris: d.Shachris,
		Shema:    d.Shema,
		Mincha:   d.MinchaObserved,
		Maariv:   d.Maariv,
		Candles:  d.Candles,
		Ending:   d.Ending,
	}
}
