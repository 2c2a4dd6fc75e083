package domain

// Session is the projection of the stored credential. It is never persisted;
// callers recompute it whenever they need it.
type Session struct {
	Role          Role `json:"role"`
	Authenticated bool `json:"authenticated"`
}

// GuestSession is the session of a client holding no credential.
var GuestSession = Session{Role: RoleGuest, Authenticated: false}
