package server

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/zippytrip/internal/app"
	"github.com/nfrund/zippytrip/internal/handlers"
	appmiddleware "github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/rendering"
	"github.com/nfrund/zippytrip/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	deps app.Dependencies
}

// New creates the echo instance with middleware and routes.
func New(deps app.Dependencies) *Server {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.GetSessionMaxAge(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	setupErrorHandling(e)

	s := &Server{E: e, deps: deps}
	s.RegisterRoutes()
	return s
}
