package domain

// Session carries the caller's identity and tenant scope. It is resolved by
// the HTTP layer and threaded explicitly through every operation; nothing in
// the service reads credentials from ambient state.
type Session struct {
	// UserID is the authenticated user, empty for guests.
	UserID string

	// Token is the raw bearer credential, forwarded verbatim to the
	// wishlist backend on authenticated calls.
	Token string

	// GuestID identifies a guest browsing session. It may be present
	// alongside UserID during the login reconciliation call.
	GuestID string

	// StoreID is the tenant scope, required on every request.
	StoreID string
}

// Authenticated reports whether the session carries a verified identity.
func (s Session) Authenticated() bool {
	return s.UserID != "" && s.Token != ""
}

// StateKey returns the key under which this session's wishlist state is
// tracked. Authenticated sessions key by user so a login from two devices
// shares one state; guests key by their browsing session.
func (s Session) StateKey() string {
	if s.Authenticated() {
		return "user:" + s.UserID
	}
	return "guest:" + s.GuestID
}
