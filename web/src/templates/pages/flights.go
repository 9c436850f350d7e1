package pages

import (
	"strings"

	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/view/dto"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// FlightBooking renders the flight wizard at its current step.
func FlightBooking(data dto.FlightBooking) g.Node {
	return wizard[catalog.Flight]{
		title:  "Book a flight",
		path:   "/flight-booking",
		plural: "flights",
		delay:  data.Delay,
		row:    flightRow,
		detail: flightRow,
	}.render(data.Draft)
}

func flightRow(f catalog.Flight) g.Node {
	return h.Div(
		h.Class("flight space-y-1"),
		h.P(h.Class("font-semibold"), g.Text(f.Airline)),
		h.P(h.Class("text-gray-400"), g.Textf("%s %s → %s %s · %s", f.From, f.Departure, f.To, f.Arrival, f.Duration)),
		g.If(len(f.Amenities) > 0, h.P(h.Class("text-sm text-gray-500"), g.Text(strings.Join(f.Amenities, ", ")))),
		h.P(h.Class("text-lg font-bold"), g.Text(money(f.Price))),
		h.P(h.Class("text-sm text-gray-500"), g.Textf("%d seats left", f.SeatsAvailable)),
	)
}
