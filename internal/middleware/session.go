package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// SessionName is the gorilla session holding the browser session id.
	SessionName = "zippy-session"
	// AuthCookie holds the token issued by the identity provider.
	AuthCookie = "auth_token"

	sidKey = "sid"
)

// SessionID returns the browser session id, minting and saving a new one on
// the first request.
func SessionID(c echo.Context) (string, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", SessionName, err)
	}
	if sid, ok := sess.Values[sidKey].(string); ok && sid != "" {
		return sid, nil
	}

	sid := uuid.NewString()
	sess.Values[sidKey] = sid
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("save %s: %w", SessionName, err)
	}
	return sid, nil
}

// AuthToken returns the token cookie, or "".
func AuthToken(c echo.Context) string {
	cookie, err := c.Cookie(AuthCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetAuthCookie stores token for the browser. A remembered sign-in outlives
// the browser session; otherwise the cookie is a session cookie. An empty
// token expires the cookie.
func SetAuthCookie(c echo.Context, token string, remember bool, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	switch {
	case token == "":
		cookie.MaxAge = -1
	case remember:
		cookie.MaxAge = int(maxAge.Seconds())
	}
	c.SetCookie(cookie)
}

// ClearAuthCookie expires the token cookie.
func ClearAuthCookie(c echo.Context) {
	SetAuthCookie(c, "", false, 0)
}
