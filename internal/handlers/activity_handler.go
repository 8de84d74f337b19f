package handlers

import (
	"context"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/repository"
)

// ActivityHandler shows the audit log
type ActivityHandler struct {
	base
	activity *repository.ActivityRepository
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(b base, activity *repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{base: b, activity: activity}
}

// List renders one server-side page of activity
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	st := pagination.FromQuery(r.URL.Query(), h.pageSize)
	res := fetch(r.Context(), "activity", one(func(ctx context.Context) (*models.ActivityPage, error) {
		return h.activity.List(ctx, models.PageRequest{Page: st.Page, Limit: st.PageSize})
	}))

	data := ActivityViewData{
		PageData: h.render.Base(r, "Activity"),
		Path:     "/activity",
		Error:    errorMessage(res.Err),
	}
	if res.Data != nil {
		data.Result = pagination.FromServer(res.Data.Items, res.Data.Total, res.Data.TotalPages, st)
	} else {
		data.Result = pagination.FromServer[models.Activity](nil, 0, 0, st)
	}
	h.render.Page(w, r, "activity.tmpl", "activity-table", data)
}
