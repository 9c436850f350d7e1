package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/booking"
	"github.com/nfrund/zippytrip/internal/middleware"
	zsession "github.com/nfrund/zippytrip/internal/session"
	"github.com/nfrund/zippytrip/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedServer(t *testing.T) (*echo.Echo, *testutils.Env) {
	t.Helper()
	env := testutils.NewEnv(t, time.Second)

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	gateMW := middleware.Gate(env.Manager, time.Second)

	page := func(c echo.Context) error {
		d := middleware.DecisionFrom(c)
		id := middleware.IdentityFrom(c)
		email := ""
		if id != nil {
			email = id.Email
		}
		return c.String(http.StatusOK, string(d.Page)+"|"+d.Param+"|"+email)
	}
	for _, p := range []string{"/", "/auth", "/UserPreferences", "/main", "/destination/:name", "/flight-booking", "/bus-rentals", "/tickets"} {
		e.GET(p, page, gateMW)
	}
	e.Any("/*", page, gateMW)
	e.GET("/_sid", func(c echo.Context) error {
		sid, err := middleware.SessionID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, sid)
	})
	return e, env
}

// workspaceOf looks up the workspace of the browser that received rec.
func workspaceOf(t *testing.T, e *echo.Echo, env *testutils.Env, rec *httptest.ResponseRecorder) *zsession.Workspace {
	t.Helper()
	sid := get(e, "/_sid", rec.Result().Cookies()...).Body.String()
	ws, ok := env.Manager.Get(sid)
	require.True(t, ok, "workspace for %q", sid)
	return ws
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authCookie(token string) *http.Cookie {
	return &http.Cookie{Name: middleware.AuthCookie, Value: token}
}

func TestGate_AnonymousVisitor(t *testing.T) {
	e, env := newGatedServer(t)

	rec := get(e, "/main")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get(echo.HeaderLocation))

	rec = get(e, "/auth")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth||", rec.Body.String())

	rec = get(e, "/no/such/page")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	assert.Zero(t, env.Preferences.Lookups(), "no preference lookup without an identity")
}

func TestGate_SignedInNotOnboarded(t *testing.T) {
	e, env := newGatedServer(t)
	_, token := env.Identity.AddAccount("ada@example.com", "pw")

	rec := get(e, "/flight-booking", authCookie(token))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/UserPreferences", rec.Header().Get(echo.HeaderLocation))

	rec = get(e, "/UserPreferences", authCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "onboarding||ada@example.com", rec.Body.String())
}

func TestGate_SignedInOnboarded(t *testing.T) {
	e, env := newGatedServer(t)
	id, token := env.Identity.AddAccount("ada@example.com", "pw")
	env.Preferences.Onboard(id.ID)

	rec := get(e, "/destination/Kathmandu", authCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "destination|Kathmandu|ada@example.com", rec.Body.String())

	for _, p := range []string{"/", "/auth", "/UserPreferences"} {
		rec = get(e, p, authCookie(token))
		assert.Equal(t, http.StatusSeeOther, rec.Code, p)
		assert.Equal(t, "/main", rec.Header().Get(echo.HeaderLocation), p)
	}
}

func TestGate_InvalidTokenIsCleared(t *testing.T) {
	e, _ := newGatedServer(t)

	rec := get(e, "/main", authCookie("forged"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get(echo.HeaderLocation))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AuthCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "auth cookie should be expired")
}

func TestGate_LeavingAFlowDiscardsItsDraft(t *testing.T) {
	e, env := newGatedServer(t)
	id, token := env.Identity.AddAccount("ada@example.com", "pw")
	env.Preferences.Onboard(id.ID)

	first := get(e, "/flight-booking", authCookie(token))
	require.Equal(t, http.StatusOK, first.Code)
	cookies := append(first.Result().Cookies(), authCookie(token))

	ws := workspaceOf(t, e, env, first)
	require.NoError(t, ws.Flights.Search(booking.Criteria{From: "A", To: "B"}))

	rec := get(e, "/flight-booking", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, booking.StepResults, ws.Flights.Step(), "staying in the flow keeps the draft")

	rec = get(e, "/bus-rentals", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, booking.StepSearch, ws.Flights.Step())
}

func TestSetAuthCookie(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth", nil), rec)
	middleware.SetAuthCookie(c, "tok", true, time.Hour)
	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/auth", nil), rec)
	middleware.SetAuthCookie(c, "tok", false, time.Hour)
	assert.Zero(t, rec.Result().Cookies()[0].MaxAge, "session cookie without remember")
}
