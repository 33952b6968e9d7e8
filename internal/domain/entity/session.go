package entity

// Session is the current signed-in identity, threaded explicitly into every
// store operation so tests can inject arbitrary sessions deterministically.
// The zero value is the anonymous session.
type Session struct {
	UserID string
	Name   string
	Email  string
}

// Anonymous returns the session of a signed-out caller.
func Anonymous() Session {
	return Session{}
}

// IsAnonymous reports whether the caller is signed out.
func (s Session) IsAnonymous() bool {
	return s.UserID == ""
}

// DisplayName returns the name to attach to created records, falling back to
// the email when no display name is set.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}

	return s.Email
}
