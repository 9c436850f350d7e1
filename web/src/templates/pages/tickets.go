package pages

import (
	"strings"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/view/dto"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Tickets lists the signed-in user's bookings.
func Tickets(data dto.Tickets) g.Node {
	var body g.Node
	switch {
	case data.Unavailable:
		body = h.P(h.Class("text-red-400"), g.Text("Your tickets could not be loaded right now. Please try again later."))
	case len(data.Tickets) == 0:
		body = h.P(h.Class("text-gray-400"), g.Text("You have no tickets yet."))
	default:
		body = h.Table(
			h.Class("w-full text-left"),
			h.THead(h.Tr(
				h.Th(g.Text("Booking")), h.Th(g.Text("Type")), h.Th(g.Text("Status")), h.Th(g.Text("Issued")),
			)),
			h.TBody(g.Map(data.Tickets, ticketRow)),
		)
	}
	return h.Div(
		h.Class("max-w-4xl mx-auto"),
		h.H1(h.Class("text-3xl font-bold mb-6"), g.Text("My Tickets")),
		card(body),
	)
}

func ticketRow(t domain.Ticket) g.Node {
	issued := ""
	if t.CreatedAt != nil {
		issued = t.CreatedAt.Time.Format("02 Jan 2006")
	}
	return h.Tr(
		h.Class("border-t border-gray-700"),
		h.Td(h.Class("py-2 font-mono"), g.Text(t.BookingNumber)),
		h.Td(g.Text(strings.ToUpper(string(t.BookingType)))),
		h.Td(g.Text(string(t.Status))),
		h.Td(g.Text(issued)),
	)
}
