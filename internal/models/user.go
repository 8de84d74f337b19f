package models

// User is a member with login credentials.
type User struct {
	ID     string  `json:"id"`
	Phone  string  `json:"phone,omitempty"`
	Role   string  `json:"role"`
	Member *Member `json:"member,omitempty"`
}

// AuthSnapshot is what the session store persists after a successful login.
type AuthSnapshot struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the snapshot carries both a token and a user.
func (s AuthSnapshot) Valid() bool {
	return s.Token != "" && s.User.ID != ""
}

// Credentials is the one-time password issued by promote and reset mutations.
type Credentials struct {
	Password string `json:"password"`
	User     *User  `json:"user,omitempty"`
}
