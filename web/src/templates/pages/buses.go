package pages

import (
	"strings"

	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/view/dto"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// BusRentals renders the bus wizard at its current step.
func BusRentals(data dto.BusRentals) g.Node {
	return wizard[catalog.Bus]{
		title:  "Bus rentals",
		path:   "/bus-rentals",
		plural: "buses",
		delay:  data.Delay,
		row:    busRow,
		detail: busRow,
	}.render(data.Draft)
}

func busRow(b catalog.Bus) g.Node {
	return h.Div(
		h.Class("bus space-y-1"),
		h.P(h.Class("font-semibold"), g.Textf("%s · %s", b.Operator, b.BusType)),
		h.P(h.Class("text-gray-400"), g.Textf("%s %s → %s %s · %s", b.From, b.Departure, b.To, b.Arrival, b.Duration)),
		g.If(len(b.Amenities) > 0, h.P(h.Class("text-sm text-gray-500"), g.Text(strings.Join(b.Amenities, ", ")))),
		h.P(h.Class("text-lg font-bold"), g.Text(money(b.Price))),
	)
}
