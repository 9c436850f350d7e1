package email

import (
	"bytes"
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Receipt describes a confirmed booking.
type Receipt struct {
	Reference  string
	Kind       string // "Flight" or "Bus"
	Carrier    string
	From       string
	To         string
	Date       string
	Passengers int
	Total      float64
	Name       string
	Email      string
}

// Message renders r as an email to the booking contact.
func (r Receipt) Message() (Message, error) {
	var buf bytes.Buffer
	if err := r.body().Render(&buf); err != nil {
		return Message{}, fmt.Errorf("render receipt %s: %w", r.Reference, err)
	}
	return Message{
		To:      r.Email,
		Subject: fmt.Sprintf("Your ZippyTrip %s booking %s", r.Kind, r.Reference),
		HTML:    buf.String(),
	}, nil
}

func (r Receipt) body() g.Node {
	row := func(label, value string) g.Node {
		return h.Tr(h.Th(g.Text(label)), h.Td(g.Text(value)))
	}
	date := r.Date
	if date == "" {
		date = "Flexible"
	}
	return h.Div(
		h.P(g.Textf("Hi %s,", r.Name)),
		h.P(g.Textf("Your %s booking is confirmed.", r.Kind)),
		h.Table(
			row("Reference", r.Reference),
			row("Carrier", r.Carrier),
			row("Route", r.From+" to "+r.To),
			row("Date", date),
			row("Passengers", fmt.Sprint(r.Passengers)),
			row("Total", fmt.Sprintf("$%.2f", r.Total)),
		),
		h.P(g.Text("Thank you for travelling with ZippyTrip.")),
	)
}
