package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/gate"
	"github.com/nfrund/zippytrip/internal/handlers"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/websocket"
)

// RegisterRoutes sets up all the application routes. Every page route runs
// the route gate; the remaining endpoints only attach the workspace.
func (s *Server) RegisterRoutes() {
	cfg := s.deps.Config

	pageHandler := handlers.NewPageHandler(s.deps.Catalog, s.deps.Tickets)
	authHandler := handlers.NewAuthHandler(s.deps.OAuth, time.Duration(cfg.GetSessionMaxAge())*time.Second)
	prefsHandler := handlers.NewPreferencesHandler(s.deps.Preferences)
	bookingHandler := handlers.NewBookingHandler(s.deps.Mailer)
	healthHandler := handlers.NewHealthHandler(s.deps.Manager)

	gated := middleware.Gate(s.deps.Manager, middleware.DefaultAwaitTimeout)
	attached := middleware.Attach(s.deps.Manager)
	rateLimiter := middleware.RateLimiter(cfg.GetAuthRateLimit())

	s.E.GET("/health", healthHandler.Health)

	s.E.GET(gate.PathLanding, pageHandler.Landing, gated)
	s.E.GET(gate.PathAuth, authHandler.AuthGet, gated)
	s.E.POST(gate.PathAuth, authHandler.AuthPost, rateLimiter, gated)
	s.E.GET(gate.PathOnboarding, prefsHandler.OnboardingGet, gated)
	s.E.POST(gate.PathOnboarding, prefsHandler.OnboardingPost, gated)
	s.E.GET(gate.PathMain, pageHandler.Main, gated)
	s.E.GET(gate.PathDestination+":name", pageHandler.Destination, gated)
	s.E.GET(gate.PathFlights, bookingHandler.FlightsGet, gated)
	s.E.POST(gate.PathFlights, bookingHandler.FlightsPost, gated)
	s.E.GET(gate.PathBuses, bookingHandler.BusesGet, gated)
	s.E.POST(gate.PathBuses, bookingHandler.BusesPost, gated)
	s.E.GET(gate.PathTickets, pageHandler.Tickets, gated)

	s.E.POST("/auth/signout", authHandler.SignOut, attached)
	s.E.GET("/auth/oauth/:provider", authHandler.OAuthStart, rateLimiter, attached)
	s.E.GET("/auth/oauth/:provider/callback", authHandler.OAuthCallback, attached)
	s.E.GET("/session/events", websocket.SessionEvents, attached)

	// Anything else still goes through the gate, which redirects unknown
	// paths home and non-canonical page paths to their route.
	s.E.Any("/*", canonical, gated)
}

func canonical(c echo.Context) error {
	d := middleware.DecisionFrom(c)
	target := "/" + string(d.Page)
	switch d.Page {
	case gate.PageLanding:
		target = gate.PathLanding
	case gate.PageOnboarding:
		target = gate.PathOnboarding
	case gate.PageDestination:
		target = gate.PathDestination + url.PathEscape(d.Param)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
