package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/view"
	"github.com/nfrund/zippytrip/internal/view/dto"
	"github.com/nfrund/zippytrip/web/src/templates/pages"
)

const (
	modeLogin  = "login"
	modeSignup = "signup"

	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_verifier"
	oauthCookieMaxAge   = 10 * 60
)

// AuthHandler handles sign-in, sign-up, sign-out and OAuth.
type AuthHandler struct {
	providers   *oauth.Registry
	rememberFor time.Duration
}

// NewAuthHandler creates a new AuthHandler. rememberFor is the lifetime of
// the token cookie when "remember me" is ticked.
func NewAuthHandler(providers *oauth.Registry, rememberFor time.Duration) *AuthHandler {
	return &AuthHandler{providers: providers, rememberFor: rememberFor}
}

func mode(v string) string {
	if v == modeSignup {
		return modeSignup
	}
	return modeLogin
}

// AuthGet renders the sign-in or sign-up form (GET /auth?mode=).
func (h *AuthHandler) AuthGet(c echo.Context) error {
	m := mode(c.QueryParam("mode"))
	data := dto.AuthForm{
		Mode:      m,
		Email:     view.TakeEmail(c),
		Providers: h.providers.Names(),
	}
	title := "Sign in"
	if m == modeSignup {
		title = "Sign up"
	}
	return page(c, http.StatusOK, title, pages.AuthForm(data))
}

// AuthPost handles both form modes (POST /auth).
func (h *AuthHandler) AuthPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	m := mode(req.Mode)
	back := "/auth?mode=" + m
	if err := c.Validate(&req); err != nil {
		view.KeepEmail(c, req.Email)
		view.SetFlashError(c, "Please enter a valid email address and password.")
		return redirect(c, back)
	}

	client := middleware.WorkspaceFrom(c).Client
	var (
		session *domain.AuthSession
		err     error
	)
	if m == modeSignup {
		session, err = client.SignUp(ctx, req.Email, req.Password)
	} else {
		session, err = client.SignInWithPassword(ctx, req.Email, req.Password, req.Remember)
	}
	if err != nil {
		logger.Warn("Authentication failed", "event", "auth_failed", "mode", m, "error", err)
		view.KeepEmail(c, req.Email)
		view.SetFlashError(c, authMessage(err))
		return redirect(c, back)
	}

	middleware.SetAuthCookie(c, session.Token, req.Remember, h.rememberFor)
	logger.Info("User authenticated", "event", "auth_succeeded", "mode", m, "user_id", session.Identity.ID)
	if m == modeSignup {
		view.SetFlashSuccess(c, "Account created successfully!")
	} else {
		view.SetFlashSuccess(c, "Signed in successfully!")
	}
	return redirect(c, "/main")
}

// SignOut ends the session (POST /auth/signout).
func (h *AuthHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	err := middleware.WorkspaceFrom(c).Client.SignOut(ctx)
	middleware.ClearAuthCookie(c)

	var signOutErr *domain.SignOutError
	if errors.As(err, &signOutErr) {
		middleware.FromContext(ctx).Warn("Provider sign-out failed", "event", "sign_out_failed", "error", err)
		view.SetFlashError(c, "You have been signed out on this device, but the sign-in service could not be reached.")
		return redirect(c, "/")
	}
	view.SetFlashSuccess(c, "You have been signed out.")
	return redirect(c, "/")
}

// OAuthStart sends the browser to the provider (GET /auth/oauth/:provider).
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	name := c.Param("provider")
	state, err := oauth.NewState()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	verifier, challenge := oauth.NewPKCE()

	url, err := middleware.WorkspaceFrom(c).Client.SignInWithOAuth(name, state, challenge)
	if err != nil {
		view.SetFlashError(c, authMessage(err))
		return redirect(c, "/auth")
	}

	setOAuthCookie(c, oauthStateCookie, state, oauthCookieMaxAge)
	setOAuthCookie(c, oauthVerifierCookie, verifier, oauthCookieMaxAge)
	return c.Redirect(http.StatusFound, url)
}

// OAuthCallback completes the provider round trip
// (GET /auth/oauth/:provider/callback).
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	name := c.Param("provider")

	state, _ := c.Cookie(oauthStateCookie)
	verifier, _ := c.Cookie(oauthVerifierCookie)
	setOAuthCookie(c, oauthStateCookie, "", -1)
	setOAuthCookie(c, oauthVerifierCookie, "", -1)

	if e := c.QueryParam("error"); e != "" {
		logger.Info("OAuth sign-in cancelled", "provider", name, "error", e)
		view.SetFlashError(c, "Sign-in was cancelled.")
		return redirect(c, "/auth")
	}
	if state == nil || verifier == nil || state.Value == "" ||
		subtle.ConstantTimeCompare([]byte(state.Value), []byte(c.QueryParam("state"))) != 1 {
		logger.Warn("OAuth state mismatch", "event", "oauth_state_mismatch", "provider", name)
		view.SetFlashError(c, "Your sign-in link expired. Please try again.")
		return redirect(c, "/auth")
	}

	session, err := middleware.WorkspaceFrom(c).Client.ExchangeOAuth(ctx, name, c.QueryParam("code"), verifier.Value)
	if err != nil {
		logger.Warn("OAuth sign-in failed", "event", "auth_failed", "provider", name, "error", err)
		view.SetFlashError(c, authMessage(err))
		return redirect(c, "/auth")
	}

	middleware.SetAuthCookie(c, session.Token, false, h.rememberFor)
	logger.Info("User authenticated", "event", "auth_succeeded", "provider", name, "user_id", session.Identity.ID)
	view.SetFlashSuccess(c, "Signed in successfully!")
	return redirect(c, "/main")
}

func setOAuthCookie(c echo.Context, name, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth/oauth",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func authMessage(err error) string {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message()
	}
	return "Something went wrong. Please try again."
}
