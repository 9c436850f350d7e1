package auth

import (
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/pubsub"
)

// ChangeKind names what happened to a session.
type ChangeKind string

const (
	SignedIn    ChangeKind = "SIGNED_IN"
	SignedOut   ChangeKind = "SIGNED_OUT"
	UserUpdated ChangeKind = "USER_UPDATED"
)

// SessionChanged is published on the session topic of a browser session.
// Identity is nil after sign-out.
type SessionChanged struct {
	Kind     ChangeKind       `json:"kind"`
	Identity *domain.Identity `json:"identity,omitempty"`
}

// SessionTopic returns the event carrying session changes for sid.
func SessionTopic(sid string) pubsub.Event[SessionChanged] {
	return pubsub.NewEvent[SessionChanged]("auth.session." + sid)
}
