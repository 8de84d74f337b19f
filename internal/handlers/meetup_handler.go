package handlers

import (
	"context"
	"net/http"
	"strings"

	"gotera/internal/models"
	"gotera/internal/service"
)

// NewMeetup renders an empty meetup form for the leader's family
func (h *FamilyHandler) NewMeetup(w http.ResponseWriter, r *http.Request) {
	familyID, err := h.myFamilyID(r)
	if err != nil {
		h.noFamily(w, r, err)
		return
	}
	h.renderMeetupForm(w, r, http.StatusOK, "", models.MeetupInput{FamilyID: familyID}, nil)
}

// EditMeetup renders the form seeded from a stored meetup
func (h *FamilyHandler) EditMeetup(w http.ResponseWriter, r *http.Request) {
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	in := models.MeetupInput{
		FamilyID:    meetup.FamilyID,
		Title:       meetup.Title,
		Description: meetup.Description,
		Location:    meetup.Location,
		MeetupDate:  meetup.MeetupDate,
	}
	if t, ok := models.ParseTimestamp(meetup.MeetupDate); ok {
		in.MeetupDate = t.Format("2006-01-02T15:04")
	}
	h.renderMeetupForm(w, r, http.StatusOK, meetup.ID, in, nil)
}

// CreateMeetup schedules a meetup for the leader's family
func (h *FamilyHandler) CreateMeetup(w http.ResponseWriter, r *http.Request) {
	familyID, err := h.myFamilyID(r)
	if err != nil {
		h.noFamily(w, r, err)
		return
	}
	h.saveMeetup(w, r, "", familyID)
}

// UpdateMeetup saves changes to a meetup
func (h *FamilyHandler) UpdateMeetup(w http.ResponseWriter, r *http.Request) {
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	h.saveMeetup(w, r, meetup.ID, meetup.FamilyID)
}

func (h *FamilyHandler) saveMeetup(w http.ResponseWriter, r *http.Request, id, familyID string) {
	in := models.MeetupInput{
		FamilyID:    familyID,
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Location:    formValue(r, "location"),
		MeetupDate:  formValue(r, "meetup_date"),
	}

	success := "Meetup scheduled"
	if id != "" {
		success = "Meetup updated"
	}
	save := mutation(&h.base, r, func(ctx context.Context, in models.MeetupInput) (*models.FamilyMeetup, error) {
		return h.attendance.SaveMeetup(ctx, id, in)
	}, success)

	if _, err := save.Run(r.Context(), in); err != nil {
		h.renderMeetupForm(w, r, http.StatusUnprocessableEntity, id, in, err)
		return
	}
	redirect(w, r, myFamilyPath)
}

func (h *FamilyHandler) renderMeetupForm(w http.ResponseWriter, r *http.Request, status int, id string, in models.MeetupInput, err error) {
	title, action := "New meetup", myFamilyPath+"/meetups"
	if id != "" {
		title, action = "Edit meetup", myFamilyPath+"/meetups/"+id
	}
	data := MeetupFormViewData{
		PageData: h.render.Base(r, title),
		MeetupID: id,
		Action:   action,
		Input:    in,
	}
	if err != nil {
		data.FieldErrors, data.Error = formError(err)
	}
	h.render.HTML(w, r, status, "meetup_form.tmpl", data)
}

// ConfirmDeleteMeetup asks before deleting a meetup
func (h *FamilyHandler) ConfirmDeleteMeetup(w http.ResponseWriter, r *http.Request) {
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	h.render.Page(w, r, "confirm_delete.tmpl", "confirm-delete", ConfirmDeleteViewData{
		PageData:  h.render.Base(r, "Delete meetup"),
		Entity:    "meetup",
		Name:      meetup.Title,
		Action:    myFamilyPath + "/meetups/" + meetup.ID + "/delete",
		CancelURL: myFamilyPath,
	})
}

// DeleteMeetup removes a meetup once confirmed
func (h *FamilyHandler) DeleteMeetup(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		redirect(w, r, myFamilyPath)
		return
	}
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	del := mutation(&h.base, r, func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, h.meetups.Delete(ctx, id)
	}, "Meetup deleted")
	if _, err := del.Run(r.Context(), meetup.ID); err != nil {
		redirect(w, r, myFamilyPath+"/meetups/"+meetup.ID+"/edit")
		return
	}
	redirect(w, r, myFamilyPath)
}

// Attendance renders the attendance sheet for a meetup
func (h *FamilyHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	h.renderAttendance(w, r, http.StatusOK, meetup, nil, nil)
}

// SaveAttendance records one row per family member for a meetup
func (h *FamilyHandler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	meetup, ok := h.loadMeetup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, http.StatusBadRequest, ErrInvalidFormData, err)
		return
	}
	rows := attendanceRowsFromForm(r)

	save := mutation(&h.base, r, func(ctx context.Context, rows []service.AttendanceRow) ([]models.Attendance, error) {
		return h.attendance.Save(ctx, meetup.ID, rows)
	}, "Attendance saved")

	if _, err := save.Run(r.Context(), rows); err != nil {
		h.renderAttendance(w, r, http.StatusUnprocessableEntity, meetup, rows, err)
		return
	}
	redirect(w, r, myFamilyPath)
}

func (h *FamilyHandler) renderAttendance(w http.ResponseWriter, r *http.Request, status int, meetup *models.FamilyMeetup, submitted []service.AttendanceRow, err error) {
	ctx := r.Context()
	data := AttendanceViewData{
		PageData: h.render.Base(r, "Attendance - "+meetup.Title),
		Meetup:   *meetup,
		Error:    errorMessage(err),
	}

	family := fetch(ctx, "family", one(func(ctx context.Context) (*models.Family, error) {
		return h.families.Get(ctx, meetup.FamilyID)
	}))
	existing := fetch(ctx, "attendance", func(ctx context.Context) ([]models.Attendance, error) {
		return h.meetups.Attendances(ctx, meetup.ID)
	})
	if data.Error == "" {
		data.Error = errorMessage(family.Err)
	}

	recorded := map[string]service.AttendanceRow{}
	if existing.Data != nil {
		data.Rate = service.AttendanceRate(*existing.Data)
		for _, a := range *existing.Data {
			recorded[a.MemberID] = service.AttendanceRow{MemberID: a.MemberID, Present: a.Present, Note: a.Note}
		}
	}
	for _, row := range submitted {
		recorded[row.MemberID] = row
	}
	if family.Data != nil {
		for _, m := range family.Data.Members {
			row := recorded[m.ID]
			data.Rows = append(data.Rows, AttendanceRowView{Member: m, Present: row.Present, Note: row.Note})
		}
	}

	h.render.HTML(w, r, status, "attendance.tmpl", data)
}

// loadMeetup fetches the meetup in the path and checks it belongs to the
// leader's family.
func (h *FamilyHandler) loadMeetup(w http.ResponseWriter, r *http.Request) (*models.FamilyMeetup, bool) {
	familyID, err := h.myFamilyID(r)
	if err != nil {
		h.noFamily(w, r, err)
		return nil, false
	}
	res := fetch(r.Context(), "meetup", one(func(ctx context.Context) (*models.FamilyMeetup, error) {
		return h.meetups.Get(ctx, r.PathValue("meetupID"))
	}))
	if res.Data == nil || res.Data.FamilyID != familyID {
		if res.Data == nil && !isNotFound(res.Err) {
			h.render.HTML(w, r, http.StatusBadGateway, "message.tmpl", MessageViewData{
				PageData:  h.render.Base(r, "Meetups"),
				Heading:   "Could not load meetup",
				Message:   errorMessage(res.Err),
				Link:      myFamilyPath,
				LinkLabel: "Back to my family",
			})
			return nil, false
		}
		notFound(w, r)
		return nil, false
	}
	return res.Data, true
}

// attendanceRowsFromForm reads one row per member_id value. Checkboxes are
// named present_<id> and notes note_<id>.
func attendanceRowsFromForm(r *http.Request) []service.AttendanceRow {
	ids := r.Form["member_id"]
	rows := make([]service.AttendanceRow, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		rows = append(rows, service.AttendanceRow{
			MemberID: id,
			Present:  r.FormValue("present_"+id) != "",
			Note:     r.FormValue("note_" + id),
		})
	}
	return rows
}
