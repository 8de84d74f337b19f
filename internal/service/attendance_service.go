package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gotera/internal/models"
	"gotera/internal/validation"
)

// ErrMeetupRequired is returned when attendance is saved without a meetup.
var ErrMeetupRequired = errors.New("meetup is required")

// MeetupStore is the meetup and attendance API surface.
type MeetupStore interface {
	Create(ctx context.Context, input models.MeetupInput) (*models.FamilyMeetup, error)
	Update(ctx context.Context, id string, input models.MeetupInput) (*models.FamilyMeetup, error)
	CreateAttendances(ctx context.Context, meetupID string, records []models.AttendanceInput) ([]models.Attendance, error)
}

// AttendanceRow is one line of the attendance sheet.
type AttendanceRow struct {
	MemberID string
	Present  bool
	Note     string
}

// AttendanceService records meetups and attendance for a family
type AttendanceService struct {
	meetups   MeetupStore
	validator *validation.Validator
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(meetups MeetupStore, validator *validation.Validator) *AttendanceService {
	return &AttendanceService{meetups: meetups, validator: validator}
}

// SaveMeetup creates a meetup when id is empty and updates it otherwise.
func (s *AttendanceService) SaveMeetup(ctx context.Context, id string, in models.MeetupInput) (*models.FamilyMeetup, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if id == "" {
		return s.meetups.Create(ctx, in)
	}
	return s.meetups.Update(ctx, id, in)
}

// Save submits one record per row, all tied to meetupID, in a single call.
func (s *AttendanceService) Save(ctx context.Context, meetupID string, rows []AttendanceRow) ([]models.Attendance, error) {
	if strings.TrimSpace(meetupID) == "" {
		return nil, ErrMeetupRequired
	}
	records := make([]models.AttendanceInput, len(rows))
	for i, row := range rows {
		records[i] = models.AttendanceInput{
			MeetupID: meetupID,
			MemberID: row.MemberID,
			Present:  row.Present,
			Note:     strings.TrimSpace(row.Note),
		}
	}
	return s.meetups.CreateAttendances(ctx, meetupID, records)
}

// AttendanceRate is the percentage of records marked present, 0 for none.
func AttendanceRate(records []models.Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	present := 0
	for _, r := range records {
		if r.Present {
			present++
		}
	}
	return float64(present) / float64(len(records)) * 100
}

// ClassifyMeetups splits meetups into past (at or before now, newest first)
// and upcoming (after now, soonest first). Meetups whose date does not parse
// are left out of both.
func ClassifyMeetups(meetups []models.FamilyMeetup, now time.Time) (past, upcoming []models.FamilyMeetup) {
	type dated struct {
		meetup models.FamilyMeetup
		at     time.Time
	}
	var p, u []dated
	for _, m := range meetups {
		at, ok := models.ParseTimestamp(m.MeetupDate)
		if !ok {
			continue
		}
		if at.After(now) {
			u = append(u, dated{m, at})
		} else {
			p = append(p, dated{m, at})
		}
	}
	sort.SliceStable(p, func(i, j int) bool { return p[i].at.After(p[j].at) })
	sort.SliceStable(u, func(i, j int) bool { return u[i].at.Before(u[j].at) })

	for _, d := range p {
		past = append(past, d.meetup)
	}
	for _, d := range u {
		upcoming = append(upcoming, d.meetup)
	}
	return past, upcoming
}

// LastAttendanceRate is the rate of the most recent past meetup that has
// attendance recorded.
func LastAttendanceRate(past []models.FamilyMeetup) (float64, bool) {
	for _, m := range past {
		if len(m.Attendances) > 0 {
			return AttendanceRate(m.Attendances), true
		}
	}
	return 0, false
}
