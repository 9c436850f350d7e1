// Package dto holds the view models handed from handlers to page templates.
package dto

import (
	"github.com/nfrund/zippytrip/internal/booking"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/domain"
)

// AuthForm is the sign-in / sign-up page.
type AuthForm struct {
	// Mode is "login" or "signup".
	Mode      string
	Email     string
	Providers []string
}

// Onboarding is the preferences questionnaire.
type Onboarding struct {
	Email string
}

// Main is the signed-in home page.
type Main struct {
	Identity     domain.Identity
	Deals        []catalog.Deal
	Destinations []catalog.Destination
}

// FlightBooking is the flight wizard.
type FlightBooking struct {
	Draft booking.Draft[catalog.Flight]
	Delay int // seconds the confirmation stays visible
}

// BusRentals is the bus wizard.
type BusRentals struct {
	Draft booking.Draft[catalog.Bus]
	Delay int
}

// Tickets is the "My Tickets" list.
type Tickets struct {
	Tickets []domain.Ticket
	// Unavailable is set when the list could not be loaded.
	Unavailable bool
}
