package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// MeetupRepository handles family meetups and their attendance records
type MeetupRepository struct {
	api Executor
}

// NewMeetupRepository creates a new meetup repository
func NewMeetupRepository(api Executor) *MeetupRepository {
	return &MeetupRepository{api: api}
}

// ListByFamily fetches the meetups of one family
func (r *MeetupRepository) ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMeetup, error) {
	var out struct {
		FamilyMeetups []models.FamilyMeetup `json:"familyMeetups"`
	}
	if err := r.api.Do(ctx, OpGetFamilyMeetups, map[string]any{"family_id": familyID}, &out); err != nil {
		return nil, fmt.Errorf("failed to list meetups: %w", err)
	}
	return out.FamilyMeetups, nil
}

// Get fetches a meetup with its attendance
func (r *MeetupRepository) Get(ctx context.Context, id string) (*models.FamilyMeetup, error) {
	var out struct {
		FamilyMeetup *models.FamilyMeetup `json:"familyMeetup"`
	}
	if err := r.api.Do(ctx, OpGetFamilyMeetup, map[string]any{"id": id}, &out); err != nil {
		return nil, fmt.Errorf("failed to get meetup: %w", err)
	}
	if out.FamilyMeetup == nil {
		return nil, ErrNotFound
	}
	return out.FamilyMeetup, nil
}

// Create schedules a meetup
func (r *MeetupRepository) Create(ctx context.Context, input models.MeetupInput) (*models.FamilyMeetup, error) {
	vars, err := withInput(input, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		CreateFamilyMeetup models.FamilyMeetup `json:"createFamilyMeetup"`
	}
	if err := r.api.Do(ctx, OpCreateFamilyMeetup, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to create meetup: %w", err)
	}
	return &out.CreateFamilyMeetup, nil
}

// Update updates a meetup
func (r *MeetupRepository) Update(ctx context.Context, id string, input models.MeetupInput) (*models.FamilyMeetup, error) {
	vars, err := withInput(input, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var out struct {
		UpdateFamilyMeetup models.FamilyMeetup `json:"updateFamilyMeetup"`
	}
	if err := r.api.Do(ctx, OpUpdateFamilyMeetup, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to update meetup: %w", err)
	}
	return &out.UpdateFamilyMeetup, nil
}

// Delete cancels a meetup
func (r *MeetupRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Do(ctx, OpDeleteFamilyMeetup, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete meetup: %w", err)
	}
	return nil
}

// Attendances fetches the attendance rows recorded for a meetup
func (r *MeetupRepository) Attendances(ctx context.Context, meetupID string) ([]models.Attendance, error) {
	var out struct {
		MeetupAttendances []models.Attendance `json:"meetupAttendances"`
	}
	if err := r.api.Do(ctx, OpGetMeetupAttendances, map[string]any{"meetup_id": meetupID}, &out); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return out.MeetupAttendances, nil
}

// CreateAttendances replaces the attendance of a meetup with records in a
// single bulk mutation
func (r *MeetupRepository) CreateAttendances(ctx context.Context, meetupID string, records []models.AttendanceInput) ([]models.Attendance, error) {
	var out struct {
		CreateAttendances []models.Attendance `json:"createAttendances"`
	}
	vars := map[string]any{"meetup_id": meetupID, "records": records}
	if err := r.api.Do(ctx, OpCreateAttendances, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}
	return out.CreateAttendances, nil
}
