package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/booking"
	"github.com/nfrund/zippytrip/internal/email"
	"github.com/nfrund/zippytrip/internal/gate"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/view"
	"github.com/nfrund/zippytrip/internal/view/dto"
	"github.com/nfrund/zippytrip/web/src/templates/pages"
)

// BookingHandler serves the flight and bus wizards. Drafts live in the
// browser session's workspace. Confirmed bookings are mailed to the contact
// when a sender is configured.
type BookingHandler struct {
	mailer email.Sender
}

func NewBookingHandler(mailer email.Sender) *BookingHandler {
	return &BookingHandler{mailer: mailer}
}

// FlightsGet handles GET /flight-booking.
func (h *BookingHandler) FlightsGet(c echo.Context) error {
	flow := middleware.WorkspaceFrom(c).Flights
	data := dto.FlightBooking{Draft: flow.Snapshot(), Delay: seconds(flow.Delay())}
	return page(c, http.StatusOK, "Flights", pages.FlightBooking(data))
}

// FlightsPost handles POST /flight-booking.
func (h *BookingHandler) FlightsPost(c echo.Context) error {
	return advance(c, h, middleware.WorkspaceFrom(c).Flights, gate.PathFlights, "Flight")
}

// BusesGet handles GET /bus-rentals.
func (h *BookingHandler) BusesGet(c echo.Context) error {
	flow := middleware.WorkspaceFrom(c).Buses
	data := dto.BusRentals{Draft: flow.Snapshot(), Delay: seconds(flow.Delay())}
	return page(c, http.StatusOK, "Bus Rentals", pages.BusRentals(data))
}

// BusesPost handles POST /bus-rentals.
func (h *BookingHandler) BusesPost(c echo.Context) error {
	return advance(c, h, middleware.WorkspaceFrom(c).Buses, gate.PathBuses, "Bus")
}

// advance applies one wizard action and redirects back to the flow page.
func advance[T booking.Item](c echo.Context, h *BookingHandler, flow *booking.Flow[T], path, kind string) error {
	logger := middleware.FromContext(c.Request().Context())

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, "Please check the details you entered.")
		return redirect(c, path)
	}

	var err error
	switch req.Action {
	case "search":
		err = flow.Search(booking.Criteria{From: req.From, To: req.To, Date: req.Date, Passengers: req.Passengers})
	case "select":
		err = flow.Select(req.ID)
	case "confirm":
		var ref string
		ref, err = flow.Confirm(booking.Contact{FullName: req.FullName, Email: req.Email, Phone: req.Phone})
		if err == nil {
			logger.Info("Booking confirmed", "event", "booking_confirmed", "flow", path, "reference", ref)
			h.sendReceipt(c.Request().Context(), receiptOf(flow.Snapshot(), kind))
		}
	case "back":
		err = flow.Back()
	}
	if err != nil {
		logger.Debug("Booking action rejected", "action", req.Action, "step", flow.Step(), "error", err)
		view.SetFlashError(c, bookingMessage(err))
	}
	return redirect(c, path)
}

func receiptOf[T booking.Item](d booking.Draft[T], kind string) email.Receipt {
	r := email.Receipt{
		Reference:  d.Reference,
		Kind:       kind,
		From:       d.Criteria.From,
		To:         d.Criteria.To,
		Date:       d.Criteria.Date,
		Passengers: max(1, d.Criteria.Passengers),
		Total:      d.Total(),
		Name:       d.Contact.FullName,
		Email:      d.Contact.Email,
	}
	if d.Selected != nil {
		if l, ok := any(*d.Selected).(interface{ ItemLabel() string }); ok {
			r.Carrier = l.ItemLabel()
		}
	}
	return r
}

// sendReceipt mails the receipt. Failures are logged; the booking stands.
func (h *BookingHandler) sendReceipt(ctx context.Context, r email.Receipt) {
	if h.mailer == nil {
		return
	}
	logger := middleware.FromContext(ctx)
	msg, err := r.Message()
	if err == nil {
		err = h.mailer.Send(ctx, msg)
	}
	if err != nil {
		logger.Warn("Failed to send booking receipt", "reference", r.Reference, "error", err)
	}
}

func bookingMessage(err error) string {
	switch {
	case errors.Is(err, booking.ErrEmptyCriteria):
		return "Please enter where you are travelling from and to."
	case errors.Is(err, booking.ErrItemNotFound):
		return "That option is not among your search results."
	case errors.Is(err, booking.ErrIncompleteContact):
		return "Please fill in your full name, email and phone number."
	default:
		return "That step is no longer available. Please continue from here."
	}
}

func seconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
