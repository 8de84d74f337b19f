package models

import "strings"

// MemberFilter holds the member search parameters. On the admin list they are
// sent to the server; on family and ministry pages they are applied to the
// already fetched members with Matches.
type MemberFilter struct {
	Search       string
	StatusID     string
	FamilyID     string
	ProfessionID string
	LocationID   string
	MinistryID   string
}

// IsZero reports whether no filter is set.
func (f MemberFilter) IsZero() bool {
	return f == MemberFilter{}
}

// Variables returns the non-empty filters as GraphQL variables.
func (f MemberFilter) Variables() map[string]any {
	vars := map[string]any{}
	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			vars[key] = v
		}
	}
	set("search", f.Search)
	set("status_id", f.StatusID)
	set("family_id", f.FamilyID)
	set("profession_id", f.ProfessionID)
	set("location_id", f.LocationID)
	set("ministry_id", f.MinistryID)
	return vars
}

// Matches reports whether m satisfies every set filter. Search is a case
// insensitive substring match on name, phone and email.
func (f MemberFilter) Matches(m Member) bool {
	if f.StatusID != "" && deref(m.StatusID) != f.StatusID {
		return false
	}
	if f.FamilyID != "" && deref(m.FamilyID) != f.FamilyID {
		return false
	}
	if f.ProfessionID != "" && deref(m.ProfessionID) != f.ProfessionID {
		return false
	}
	if f.LocationID != "" && deref(m.LocationID) != f.LocationID {
		return false
	}
	if f.MinistryID != "" {
		found := false
		for _, ministry := range m.Ministries {
			if ministry.ID == f.MinistryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(m.FullName + " " + m.Phone + " " + m.Email)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// FilterMembers returns the members that match f, preserving order.
func FilterMembers(members []Member, f MemberFilter) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}
