package websocket

import "github.com/nfrund/zippytrip/internal/session"

// SessionEvent is pushed to the browser after every committed resolution.
// The page reloads when the pair (UserID, Onboarded) changes.
type SessionEvent struct {
	SignedIn  bool   `json:"signed_in"`
	UserID    string `json:"user_id"`
	Onboarded bool   `json:"onboarded"`
}

// NewSessionEvent projects a resolver state onto the wire.
func NewSessionEvent(st session.State) SessionEvent {
	ev := SessionEvent{SignedIn: st.SignedIn(), Onboarded: st.Onboarded}
	if st.Identity != nil {
		ev.UserID = st.Identity.ID
	}
	return ev
}
