package security

import "strings"

// Role is a member's authorization role as issued by the API.
type Role string

const (
	RoleUnknown        Role = ""
	RoleAdmin          Role = "admin"
	RoleFamilyLeader   Role = "fl"
	RoleTeamLeader     Role = "tl"
	RoleMinistryLeader Role = "ml"
	RoleMember         Role = "member"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleAdmin, RoleFamilyLeader, RoleTeamLeader, RoleMinistryLeader, RoleMember}

// ParseRole maps an API role string onto Role. Unrecognised values map to
// RoleUnknown.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r
		}
	}
	return RoleUnknown
}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleFamilyLeader:
		return "Family Leader"
	case RoleTeamLeader:
		return "Team Leader"
	case RoleMinistryLeader:
		return "Ministry Leader"
	case RoleMember:
		return "Member"
	default:
		return "Unknown"
	}
}

// Capability is something the UI or a route may allow.
type Capability string

const (
	CapManageMembers    Capability = "manage_members"
	CapManageFamilies   Capability = "manage_families"
	CapManageMinistries Capability = "manage_ministries"
	CapManageLookups    Capability = "manage_lookups"
	CapViewActivity     Capability = "view_activity"
	CapViewMyFamily     Capability = "view_my_family"
	CapRecordAttendance Capability = "record_attendance"
	CapViewMyMinistry   Capability = "view_my_ministry"
)

var capabilities = map[Role][]Capability{
	RoleAdmin: {
		CapManageMembers,
		CapManageFamilies,
		CapManageMinistries,
		CapManageLookups,
		CapViewActivity,
	},
	RoleFamilyLeader: {
		CapViewMyFamily,
		CapRecordAttendance,
	},
	RoleMinistryLeader: {
		CapViewMyMinistry,
	},
}

// Can reports whether role grants capability.
func Can(role Role, capability Capability) bool {
	for _, c := range capabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// Landing pages per role. Roles without one are sent to PathUnauthorized.
const (
	PathLogin        = "/auth/login"
	PathUnauthorized = "/auth/unauthorized"
	PathNotFound     = "/auth/404"
)

// LandingPath is where a signed-in user of role starts.
func LandingPath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/dashboard"
	case RoleFamilyLeader:
		return "/families/my-family"
	case RoleMinistryLeader:
		return "/ministries/my-ministry"
	default:
		return PathUnauthorized
	}
}
