package models

// Family groups members under a family leader.
type Family struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	LeaderID    *string  `json:"leader_id,omitempty"`
	Leader      *Member  `json:"leader,omitempty"`
	Members     []Member `json:"members,omitempty"`
}

// FamilySummary is the read-optimized list row for families.
type FamilySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LeaderName  string `json:"leader_name,omitempty"`
	MemberCount int    `json:"member_count"`
	MeetupCount int    `json:"meetup_count"`
}

// Ministry is a service team members can join and be led by a ministry leader.
type Ministry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Leaders     []Member `json:"leaders,omitempty"`
	Members     []Member `json:"members,omitempty"`
}

// MinistryInput is the payload for createMinistry and updateMinistry.
type MinistryInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Profession is a named occupation lookup.
type Profession struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members,omitempty"`
}

// Location is a named residence area lookup.
type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members,omitempty"`
}

// Status is a membership status lookup (active, inactive, ...).
type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleRef is the role lookup entity attached to members.
type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NamedInput is the payload for lookups that only carry a name.
type NamedInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Option is a select box entry built from a lookup list.
type Option struct {
	Value string
	Label string
}

// FamilyInput is the payload for createFamily and updateFamily.
type FamilyInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	LeaderID    string `json:"leader_id,omitempty"`
}
