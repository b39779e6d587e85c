package entity

// SessionState tracks how far an account has progressed through the
// login flow. The backend issues the access token only after OTP
// verification, so "unverified" holds nothing but the pending email.
type SessionState string

const (
	// SessionAnonymous means no token is held.
	SessionAnonymous SessionState = "anonymous"
	// SessionUnverified means credentials were posted and an OTP is
	// awaited out-of-band.
	SessionUnverified SessionState = "unverified"
	// SessionVerified means the OTP was confirmed and a token is held.
	SessionVerified SessionState = "verified"
)

// Session is an immutable snapshot of the client's authentication
// state. Mutating operations return a fresh snapshot instead of
// updating shared fields, so a stale copy captured by a long-running
// caller can never observe a half-applied transition.
type Session struct {
	State SessionState
	Token string
	User  *User

	// PendingEmail is retained between login/register and the OTP step.
	PendingEmail string

	// CustomerAddress mirrors the client-local address record.
	CustomerAddress *CustomerAddress
}

// Anonymous returns the zero session.
func Anonymous() Session {
	return Session{State: SessionAnonymous}
}

// IsAuthenticated reports whether the session holds a usable token.
func (s Session) IsAuthenticated() bool {
	return s.State == SessionVerified && s.Token != ""
}

// Role returns the session's role, or the empty Role when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}

	return s.User.Role
}
