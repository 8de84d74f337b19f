package models

// Member is a person on the organization's roll. Relations are nullable; the
// free-text ProfessionName/LocationName fields override a missing relation.
type Member struct {
	ID             string      `json:"id"`
	FullName       string      `json:"full_name"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email,omitempty"`
	Gender         string      `json:"gender,omitempty"`
	FamilyID       *string     `json:"family_id,omitempty"`
	RoleID         *string     `json:"role_id,omitempty"`
	StatusID       *string     `json:"status_id,omitempty"`
	ProfessionID   *string     `json:"profession_id,omitempty"`
	LocationID     *string     `json:"location_id,omitempty"`
	ProfessionName string      `json:"profession_name,omitempty"`
	LocationName   string      `json:"location_name,omitempty"`
	Family         *Family     `json:"family,omitempty"`
	Role           *RoleRef    `json:"role,omitempty"`
	Status         *Status     `json:"status,omitempty"`
	Profession     *Profession `json:"profession,omitempty"`
	Location       *Location   `json:"location,omitempty"`
	Ministries     []Ministry  `json:"ministries,omitempty"`
	LedMinistries  []Ministry  `json:"ledMinistries,omitempty"`
	User           *User       `json:"user,omitempty"`
}

// DisplayProfession returns the related profession name, falling back to the
// free-text name.
func (m Member) DisplayProfession() string {
	if m.Profession != nil && m.Profession.Name != "" {
		return m.Profession.Name
	}
	return m.ProfessionName
}

// DisplayLocation returns the related location name, falling back to the
// free-text name.
func (m Member) DisplayLocation() string {
	if m.Location != nil && m.Location.Name != "" {
		return m.Location.Name
	}
	return m.LocationName
}

// DisplayFamily returns the family name or an empty string.
func (m Member) DisplayFamily() string {
	if m.Family == nil {
		return ""
	}
	return m.Family.Name
}

// DisplayStatus returns the status name or an empty string.
func (m Member) DisplayStatus() string {
	if m.Status == nil {
		return ""
	}
	return m.Status.Name
}

// HasLogin reports whether the member has been promoted to a user account.
func (m Member) HasLogin() bool {
	return m.User != nil && m.User.ID != ""
}

// MyMinistry resolves the ministry a ministry leader manages: the first led
// ministry, then the first ministry the member belongs to.
func (m Member) MyMinistry() (Ministry, bool) {
	if len(m.LedMinistries) > 0 {
		return m.LedMinistries[0], true
	}
	if len(m.Ministries) > 0 {
		return m.Ministries[0], true
	}
	return Ministry{}, false
}

// MemberInput is the payload for createMember and updateMember. Optional
// fields are omitted from the request when empty.
type MemberInput struct {
	FullName       string   `json:"full_name" validate:"required,min=2"`
	Phone          string   `json:"phone" validate:"required,phone"`
	Email          string   `json:"email,omitempty" validate:"omitempty,email"`
	Gender         string   `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	FamilyID       string   `json:"family_id,omitempty"`
	StatusID       string   `json:"status_id,omitempty"`
	ProfessionID   string   `json:"profession_id,omitempty"`
	LocationID     string   `json:"location_id,omitempty"`
	ProfessionName string   `json:"profession_name,omitempty"`
	LocationName   string   `json:"location_name,omitempty"`
	MinistryIDs    []string `json:"ministry_ids,omitempty"`
}

// MemberInputFrom seeds an update draft from a fetched member.
func MemberInputFrom(m Member) MemberInput {
	in := MemberInput{
		FullName:       m.FullName,
		Phone:          m.Phone,
		Email:          m.Email,
		Gender:         m.Gender,
		FamilyID:       deref(m.FamilyID),
		StatusID:       deref(m.StatusID),
		ProfessionID:   deref(m.ProfessionID),
		LocationID:     deref(m.LocationID),
		ProfessionName: m.ProfessionName,
		LocationName:   m.LocationName,
	}
	for _, ministry := range m.Ministries {
		in.MinistryIDs = append(in.MinistryIDs, ministry.ID)
	}
	return in
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
