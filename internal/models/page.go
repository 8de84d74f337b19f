package models

// DefaultPageSize is used when a list request omits its limit.
const DefaultPageSize = 10

// PageRequest selects a 1-indexed page of a server-paginated list.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies the defaults for a missing page or limit.
func (p PageRequest) Normalize(defaultLimit int) PageRequest {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// MemberPage is one page of the server-side member list.
type MemberPage struct {
	Items      []Member `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

// ActivityPage is one page of the activity log.
type ActivityPage struct {
	Items      []Activity `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
