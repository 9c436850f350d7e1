package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/gate"
	"github.com/nfrund/zippytrip/internal/session"
)

const (
	workspaceKey = "workspace"
	identityKey  = "identity"
	decisionKey  = "decision"
)

// DefaultAwaitTimeout bounds how long a navigation waits for the session
// resolver before deciding with the state it has.
const DefaultAwaitTimeout = 5 * time.Second

// Workspaces hands out per-session workspaces.
type Workspaces interface {
	Acquire(ctx context.Context, sid, token string) (*session.Workspace, error)
}

// Attach loads the workspace of the browser session into the echo context.
// Non-page endpoints use it directly; Gate builds on it.
func Attach(ws Workspaces) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := attach(c, ws); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func attach(c echo.Context, ws Workspaces) (*session.Workspace, error) {
	sid, err := SessionID(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	w, err := ws.Acquire(c.Request().Context(), sid, AuthToken(c))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	c.Set(workspaceKey, w)
	return w, nil
}

// Gate runs the route gate on every navigation. It waits for the latest
// session change to resolve, then either redirects with 303 or lets the page
// handler run with the identity and decision stored in the context.
func Gate(ws Workspaces, awaitTimeout time.Duration) echo.MiddlewareFunc {
	if awaitTimeout <= 0 {
		awaitTimeout = DefaultAwaitTimeout
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			w, err := attach(c, ws)
			if err != nil {
				return err
			}
			logger := FromContext(c.Request().Context()).With("sid", w.SID)

			ctx, cancel := context.WithTimeout(c.Request().Context(), awaitTimeout)
			st, err := w.Resolver.Await(ctx)
			cancel()
			settled := err == nil
			if err != nil {
				if errors.Is(err, context.Canceled) && c.Request().Context().Err() != nil {
					return err
				}
				// Decide on the last committed state.
				logger.Warn("Session resolution not settled", "event", "gate_await_timeout", "error", err)
				st = w.Resolver.State()
			}

			// An unsettled state may predate the token, so only a settled
			// signed-out resolution drops the cookie.
			if settled && !st.SignedIn() && AuthToken(c) != "" {
				ClearAuthCookie(c)
			}

			d := gate.Evaluate(gate.Intent{
				Path:      c.Request().URL.Path,
				SignedIn:  st.SignedIn(),
				Onboarded: st.Onboarded,
			})
			if !d.Render {
				logger.Debug("Gate redirect", "event", "gate_redirect", "path", c.Request().URL.Path, "to", d.Redirect)
				return c.Redirect(http.StatusSeeOther, d.Redirect)
			}

			c.Set(identityKey, st.Identity)
			c.Set(decisionKey, d)
			w.Leave(flowOf(d.Page))
			return next(c)
		}
	}
}

func flowOf(p gate.Page) string {
	switch p {
	case gate.PageFlights:
		return session.FlowFlights
	case gate.PageBuses:
		return session.FlowBuses
	default:
		return ""
	}
}

// WorkspaceFrom returns the workspace stored by Attach or Gate.
func WorkspaceFrom(c echo.Context) *session.Workspace {
	w, _ := c.Get(workspaceKey).(*session.Workspace)
	return w
}

// IdentityFrom returns the identity the gate decided with, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// DecisionFrom returns the gate decision for the current page.
func DecisionFrom(c echo.Context) gate.Decision {
	d, _ := c.Get(decisionKey).(gate.Decision)
	return d
}
