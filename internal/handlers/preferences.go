package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/view"
	"github.com/nfrund/zippytrip/internal/view/dto"
	"github.com/nfrund/zippytrip/web/src/templates/pages"
)

// PreferencesHandler serves the onboarding questionnaire.
type PreferencesHandler struct {
	prefs domain.PreferenceRepository
}

func NewPreferencesHandler(prefs domain.PreferenceRepository) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// OnboardingGet handles GET /UserPreferences.
func (h *PreferencesHandler) OnboardingGet(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	return page(c, http.StatusOK, "Your preferences", pages.Onboarding(dto.Onboarding{Email: identity.Email}))
}

// OnboardingPost saves the questionnaire and tells the session resolver the
// user changed, so the next navigation sees onboarding as complete.
func (h *PreferencesHandler) OnboardingPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	identity := middleware.IdentityFrom(c)

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, "Please choose a travel style and a budget.")
		return redirect(c, "/UserPreferences")
	}

	_, err := h.prefs.SavePreferences(ctx, &domain.Preferences{
		UserID:      identity.ID,
		TravelStyle: req.TravelStyle,
		Budget:      req.Budget,
		Interests:   req.Interests,
		HomeCity:    req.HomeCity,
	})
	if err != nil {
		logger.Error("Failed to save preferences", "user_id", identity.ID, "error", err)
		view.SetFlashError(c, "We could not save your preferences. Please try again.")
		return redirect(c, "/UserPreferences")
	}

	if err := middleware.WorkspaceFrom(c).Client.NotifyUserUpdated(ctx); err != nil {
		logger.Warn("Failed to announce user update", "user_id", identity.ID, "error", err)
	}
	logger.Info("Onboarding complete", "event", "onboarding_complete", "user_id", identity.ID)
	view.SetFlashSuccess(c, "Thanks! Your preferences are saved.")
	return redirect(c, "/main")
}
