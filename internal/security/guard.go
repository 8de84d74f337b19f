package security

// Decision is the outcome of guarding one navigation.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decides whether a page may render. An unauthenticated caller is
// always sent to the login page whatever the required role. When required is
// set and differs from role the caller goes to their own landing page.
func Guard(authenticated bool, role, required Role) Decision {
	if !authenticated {
		return Decision{Redirect: PathLogin}
	}
	if required != RoleUnknown && role != required {
		return Decision{Redirect: LandingPath(role)}
	}
	return Decision{Allow: true}
}
