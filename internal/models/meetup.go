package models

// FamilyMeetup is a scheduled family gathering. MeetupDate is kept as the raw
// server value; see ParseTimestamp.
type FamilyMeetup struct {
	ID          string       `json:"id"`
	FamilyID    string       `json:"family_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location,omitempty"`
	MeetupDate  string       `json:"meetup_date"`
	Attendances []Attendance `json:"attendances,omitempty"`
}

// MeetupInput is the payload for createFamilyMeetup and updateFamilyMeetup.
type MeetupInput struct {
	FamilyID    string `json:"family_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	MeetupDate  string `json:"meetup_date" validate:"required,timestamp"`
}

// Attendance ties one member to a meetup with a present flag.
type Attendance struct {
	ID       string  `json:"id"`
	MeetupID string  `json:"meetup_id"`
	MemberID string  `json:"member_id"`
	Present  bool    `json:"present"`
	Note     string  `json:"note,omitempty"`
	Member   *Member `json:"member,omitempty"`
}

// AttendanceInput is one row of a bulk attendance submission.
type AttendanceInput struct {
	MeetupID string `json:"meetup_id"`
	MemberID string `json:"member_id"`
	Present  bool   `json:"present"`
	Note     string `json:"note,omitempty"`
}
