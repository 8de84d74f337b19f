package handlers

import (
	"context"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/repository"
)

const recentActivityLimit = 5

// DashboardHandler renders the admin overview
type DashboardHandler struct {
	base
	members     *repository.MemberRepository
	families    *repository.FamilyRepository
	ministries  *repository.MinistryRepository
	professions *repository.NamedRepository[models.Profession]
	locations   *repository.NamedRepository[models.Location]
	activity    *repository.ActivityRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(b base, members *repository.MemberRepository, families *repository.FamilyRepository,
	ministries *repository.MinistryRepository, professions *repository.NamedRepository[models.Profession],
	locations *repository.NamedRepository[models.Location], activity *repository.ActivityRepository) *DashboardHandler {
	return &DashboardHandler{
		base:        b,
		members:     members,
		families:    families,
		ministries:  ministries,
		professions: professions,
		locations:   locations,
		activity:    activity,
	}
}

// Show renders the counts and the latest activity
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := AdminDashboardViewData{PageData: h.render.Base(r, "Dashboard")}
	note := func(err error) {
		if err != nil {
			data.Errors = append(data.Errors, errorMessage(err))
		}
	}

	members := fetch(ctx, "member count", one(func(ctx context.Context) (*models.MemberPage, error) {
		return h.members.List(ctx, models.MemberFilter{}, models.PageRequest{Page: 1, Limit: 1})
	}))
	note(members.Err)
	if members.Data != nil {
		data.MemberCount = members.Data.Total
	}

	families := fetch(ctx, "families", h.families.Summaries)
	note(families.Err)
	if families.Data != nil {
		data.FamilyCount = len(*families.Data)
	}

	ministries := fetch(ctx, "ministries", h.ministries.List)
	note(ministries.Err)
	if ministries.Data != nil {
		data.MinistryCount = len(*ministries.Data)
	}

	professions := fetch(ctx, "professions", h.professions.List)
	note(professions.Err)
	if professions.Data != nil {
		data.ProfessionCount = len(*professions.Data)
	}

	locations := fetch(ctx, "locations", h.locations.List)
	note(locations.Err)
	if locations.Data != nil {
		data.LocationCount = len(*locations.Data)
	}

	activity := fetch(ctx, "activity", one(func(ctx context.Context) (*models.ActivityPage, error) {
		return h.activity.List(ctx, models.PageRequest{Page: 1, Limit: recentActivityLimit})
	}))
	note(activity.Err)
	if activity.Data != nil {
		data.RecentActivity = activity.Data.Items
	}

	h.render.HTML(w, r, http.StatusOK, "dashboard.tmpl", data)
}
