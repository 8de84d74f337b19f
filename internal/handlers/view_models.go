package handlers

import (
	"gotera/internal/models"
	"gotera/internal/notify"
	"gotera/internal/pagination"
	"gotera/internal/security"
	"gotera/internal/service"
	"gotera/internal/validation"
)

// PageData is shared by every full page.
type PageData struct {
	Title       string
	User        *models.User
	Role        security.Role
	CSRFToken   string
	Flashes     []notify.Notice
	Nav         []NavItem
	CurrentPath string
}

type NavItem struct {
	Label  string
	Path   string
	Active bool
}

type LoginViewData struct {
	PageData
	Phone       string
	Error       string
	FieldErrors validation.Errors
}

type MessageViewData struct {
	PageData
	Heading   string
	Message   string
	Link      string
	LinkLabel string
}

type AdminDashboardViewData struct {
	PageData
	MemberCount     int
	FamilyCount     int
	MinistryCount   int
	ProfessionCount int
	LocationCount   int
	RecentActivity  []models.Activity
	Errors          []string
}

type MemberListViewData struct {
	PageData
	Path        string
	Result      pagination.Result[models.Member]
	Filter      models.MemberFilter
	Error       string
	Statuses    []models.Option
	Families    []models.Option
	Professions []models.Option
	Locations   []models.Option
	Ministries  []models.Option
}

type MemberFormViewData struct {
	PageData
	MemberID    string
	Action      string
	Input       models.MemberInput
	FieldErrors validation.Errors
	Error       string
	Statuses    []models.Option
	Families    []models.Option
	Professions []models.Option
	Locations   []models.Option
	Ministries  []models.Option
}

type MemberDetailViewData struct {
	PageData
	Member        models.Member
	Roles         []RoleOption
	Ministries    []models.Option
	Families      []models.Option
	PromoteRole   string
	PromoteError  string
	TransferError string
	ResetError    string
	Credentials   *service.CredentialsResult
}

type RoleOption struct {
	Value string
	Label string
}

type ConfirmDeleteViewData struct {
	PageData
	Entity    string
	Name      string
	Action    string
	CancelURL string
}

type FamilyListViewData struct {
	PageData
	Path   string
	Result pagination.Result[models.FamilySummary]
	Error  string
}

type FamilyFormViewData struct {
	PageData
	FamilyID    string
	Action      string
	Input       models.FamilyInput
	Leaders     []models.Option
	FieldErrors validation.Errors
	Error       string
}

type FamilyDetailViewData struct {
	PageData
	Path     string
	Family   models.Family
	Members  pagination.Result[models.Member]
	Past     []models.FamilyMeetup
	Upcoming []models.FamilyMeetup
	LastRate float64
	HasRate  bool
	IsMine   bool
	Error    string
}

type MeetupFormViewData struct {
	PageData
	MeetupID    string
	Action      string
	Input       models.MeetupInput
	FieldErrors validation.Errors
	Error       string
}

type AttendanceViewData struct {
	PageData
	Meetup models.FamilyMeetup
	Rows   []AttendanceRowView
	Rate   float64
	Error  string
}

type AttendanceRowView struct {
	Member  models.Member
	Present bool
	Note    string
}

type MinistryListViewData struct {
	PageData
	Path   string
	Result pagination.Result[models.Ministry]
	Error  string
}

type MinistryFormViewData struct {
	PageData
	MinistryID  string
	Action      string
	Input       models.MinistryInput
	FieldErrors validation.Errors
	Error       string
}

type MinistryDetailViewData struct {
	PageData
	Path     string
	Ministry models.Ministry
	Members  pagination.Result[models.Member]
	IsMine   bool
	Error    string
}

// LookupRow is one profession or location.
type LookupRow struct {
	ID          string
	Name        string
	MemberCount int
}

type LookupListViewData struct {
	PageData
	Kind        lookupKind
	Path        string
	Result      pagination.Result[LookupRow]
	Error       string
	EditID      string
	Input       models.NamedInput
	FieldErrors validation.Errors
	FormError   string
}

type ActivityViewData struct {
	PageData
	Path   string
	Result pagination.Result[models.Activity]
	Error  string
}
