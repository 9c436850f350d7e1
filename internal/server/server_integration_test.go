package server_test

import (
	"net/http"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`ZT-[A-HJ-NP-Z2-9]{8}`)

func onboard(t *testing.T, b *browser) {
	t.Helper()
	p := b.post("/UserPreferences", url.Values{
		"travel_style": {"adventure"},
		"budget":       {"moderate"},
		"interests":    {"hiking", "food"},
		"home_city":    {"Kathmandu"},
	})
	require.Equal(t, "/main", p.Path)
}

func TestJourney_SignUpOnboardAndBook(t *testing.T) {
	s := setupIntegrationTest(t)
	b := s.browser(t)

	p := b.get("/flight-booking")
	assert.Equal(t, "/auth", p.Path, "anonymous visitors are sent to sign in")

	p = b.post("/auth", url.Values{"mode": {"signup"}, "email": {"ada@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "/UserPreferences", p.Path, "new accounts are onboarded first")
	assert.Contains(t, p.Body, "Account created successfully!")
	assert.Contains(t, p.Body, "Tell us how you travel")
	require.NotNil(t, b.cookie("auth_token"))

	onboard(t, b)
	stored, ok := s.Preferences.Get("user:1")
	require.True(t, ok)
	assert.Equal(t, []string{"hiking", "food"}, stored.Interests)

	p = b.get("/UserPreferences")
	assert.Equal(t, "/main", p.Path, "onboarding is never shown again")
	assert.Contains(t, p.Body, "Popular Destinations")

	p = b.post("/flight-booking", url.Values{"action": {"search"}, "from": {"A"}, "to": {"B"}, "passengers": {"2"}})
	assert.Equal(t, "/flight-booking", p.Path)
	assert.Contains(t, p.Body, "13 flights from A to B")

	p = b.post("/flight-booking", url.Values{"action": {"select"}, "id": {"3"}})
	assert.Contains(t, p.Body, "Passenger details")

	p = b.post("/flight-booking", url.Values{"action": {"confirm"}})
	assert.Contains(t, p.Body, "Please fill in your full name, email and phone number.")

	p = b.post("/flight-booking", url.Values{
		"action": {"confirm"}, "full_name": {"Ada Lovelace"}, "email": {"ada@example.com"}, "phone": {"555-0100"},
	})
	assert.Contains(t, p.Body, "Booking confirmed")
	assert.Regexp(t, referencePattern, p.Body)
	assert.Contains(t, p.Body, `hx-trigger="load delay:1s"`)

	sent := s.Outbox.Sent()
	require.Len(t, sent, 1, "a receipt is mailed to the contact")
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, referencePattern.FindString(p.Body))
	assert.Contains(t, sent[0].HTML, "A to B")

	assert.Eventually(t, func() bool {
		return regexp.MustCompile(`value="search"`).MatchString(b.get("/flight-booking").Body)
	}, 3*time.Second, 100*time.Millisecond, "the draft resets after the confirmation delay")
}

func TestJourney_LeavingAFlowDiscardsTheDraft(t *testing.T) {
	s := setupIntegrationTest(t)
	id, _ := s.Identity.AddAccount("ada@example.com", "pw")
	s.Preferences.Onboard(id.ID)
	b := s.browser(t)
	b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})

	p := b.post("/bus-rentals", url.Values{"action": {"search"}, "from": {"Kathmandu"}, "to": {"Pokhara"}})
	require.Contains(t, p.Body, "from Kathmandu to Pokhara")

	b.get("/main")
	p = b.get("/bus-rentals")
	assert.Contains(t, p.Body, `value="search"`)
	assert.NotContains(t, p.Body, "from Kathmandu to Pokhara")
}

func TestJourney_SignInFailureKeepsEmail(t *testing.T) {
	s := setupIntegrationTest(t)
	s.Identity.AddAccount("ada@example.com", "pw")
	b := s.browser(t)

	p := b.post("/auth", url.Values{"mode": {"login"}, "email": {"ada@example.com"}, "password": {"wrong"}})
	assert.Equal(t, "/auth", p.Path)
	assert.Equal(t, "login", p.Query.Get("mode"))
	assert.Contains(t, p.Body, "Invalid email or password.")
	assert.Contains(t, p.Body, `value="ada@example.com"`)
	assert.Nil(t, b.cookie("auth_token"))

	p = b.post("/auth", url.Values{"mode": {"signup"}, "email": {"ada@example.com"}, "password": {"pw"}})
	assert.Contains(t, p.Body, "A user with this email already exists.")

	p = b.post("/auth", url.Values{"email": {"not-an-email"}, "password": {"pw"}})
	assert.Contains(t, p.Body, "Please enter a valid email address and password.")
}

func TestJourney_ProviderDown(t *testing.T) {
	s := setupIntegrationTest(t)
	s.Identity.Down = true
	b := s.browser(t)

	p := b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})
	assert.Equal(t, "/auth", p.Path)
	assert.Contains(t, p.Body, "We could not reach the sign-in service.")
}

func TestJourney_SignOut(t *testing.T) {
	s := setupIntegrationTest(t)
	id, _ := s.Identity.AddAccount("ada@example.com", "pw")
	s.Preferences.Onboard(id.ID)
	b := s.browser(t)

	p := b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}, "remember": {"true"}})
	require.Equal(t, "/main", p.Path)

	p = b.post("/auth/signout", nil)
	assert.Equal(t, "/", p.Path)
	assert.Contains(t, p.Body, "You have been signed out.")
	assert.Nil(t, b.cookie("auth_token"))

	p = b.get("/main")
	assert.Equal(t, "/auth", p.Path)
}

func TestJourney_SignOutProviderFailure(t *testing.T) {
	s := setupIntegrationTest(t)
	id, _ := s.Identity.AddAccount("ada@example.com", "pw")
	s.Preferences.Onboard(id.ID)
	b := s.browser(t)
	b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})

	s.Identity.SignOutErr = domain.ErrProviderUnavailable
	p := b.post("/auth/signout", nil)
	assert.Equal(t, "/", p.Path, "the local session is cleared anyway")
	assert.Contains(t, p.Body, "could not be reached")

	p = b.get("/tickets")
	assert.Equal(t, "/auth", p.Path)
}

func TestJourney_PreferenceLookupFailsOpen(t *testing.T) {
	s := setupIntegrationTest(t)
	s.Identity.AddAccount("ada@example.com", "pw")
	s.Preferences.FindErr = assert.AnError
	b := s.browser(t)

	p := b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})
	assert.Equal(t, "/UserPreferences", p.Path)
}

func TestPages_DestinationAndTickets(t *testing.T) {
	s := setupIntegrationTest(t)
	id, _ := s.Identity.AddAccount("ada@example.com", "pw")
	s.Preferences.Onboard(id.ID)
	s.Tickets.Add(id.ID, domain.BookingFlight, "ZT-ABCDEFGH")
	s.Tickets.Add("user:other", domain.BookingBus, "ZT-ZZZZZZZZ")
	b := s.browser(t)
	b.post("/auth", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})

	p := b.get("/destination/kathmandu")
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Kathmandu")

	p = b.get("/destination/atlantis")
	assert.Equal(t, http.StatusNotFound, p.Status)

	p = b.get("/main/")
	assert.Equal(t, "/main", p.Path, "trailing slashes are canonicalized")

	p = b.get("/nowhere")
	assert.Equal(t, "/main", p.Path, "unknown paths go home, which sends signed-in users to main")

	p = b.get("/tickets")
	assert.Contains(t, p.Body, "ZT-ABCDEFGH")
	assert.NotContains(t, p.Body, "ZT-ZZZZZZZZ")

	s.Tickets.Err = assert.AnError
	p = b.get("/tickets")
	assert.Contains(t, p.Body, "could not be loaded")
}

func TestHealth(t *testing.T) {
	s := setupIntegrationTest(t)
	b := s.browser(t)
	b.get("/")

	p := b.get("/health")
	assert.Equal(t, http.StatusOK, p.Status)
	assert.JSONEq(t, `{"status":"ok","workspaces":1}`, p.Body)
}
