package pages

import (
	"fmt"
	"strconv"

	"github.com/nfrund/zippytrip/internal/booking"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// wizard describes how one booking flow is drawn. Only the item rows differ
// between flights and buses.
type wizard[T booking.Item] struct {
	title  string
	path   string
	plural string
	delay  int
	row    func(T) g.Node
	detail func(T) g.Node
}

func (w wizard[T]) render(d booking.Draft[T]) g.Node {
	var body g.Node
	switch d.Step {
	case booking.StepResults:
		body = w.results(d)
	case booking.StepBooking:
		body = w.booking(d)
	case booking.StepConfirmation:
		body = w.confirmation(d)
	default:
		body = w.search(d)
	}
	return h.Div(
		h.Class("max-w-4xl mx-auto space-y-6"),
		h.H1(h.Class("text-3xl font-bold"), g.Text(w.title)),
		steps(d.Step),
		body,
	)
}

func (w wizard[T]) form(action string, children ...g.Node) g.Node {
	return h.Form(append([]g.Node{
		h.Method("post"), h.Action(w.path), h.Class("space-y-4"),
		hidden("action", action),
	}, children...)...)
}

func (w wizard[T]) search(d booking.Draft[T]) g.Node {
	passengers := d.Criteria.Passengers
	if passengers < 1 {
		passengers = 1
	}
	return card(w.form("search",
		h.Div(h.Class("grid grid-cols-1 md:grid-cols-2 gap-4"),
			field("From", "from", "text", d.Criteria.From, true),
			field("To", "to", "text", d.Criteria.To, true),
			field("Date", "date", "date", d.Criteria.Date, false),
			field("Passengers", "passengers", "number", strconv.Itoa(passengers), false),
		),
		submit("Search "+w.plural),
	))
}

func (w wizard[T]) results(d booking.Draft[T]) g.Node {
	return h.Div(
		h.Class("space-y-4"),
		h.P(h.Class("text-gray-400"), g.Textf("%d %s from %s to %s", len(d.Results), w.plural, d.Criteria.From, d.Criteria.To)),
		g.Map(d.Results, func(item T) g.Node {
			return card(
				h.Div(h.Class("flex items-center justify-between"),
					w.row(item),
					w.form("select",
						hidden("id", item.ItemID()),
						h.Button(h.Type("submit"), h.Class("bg-blue-600 hover:bg-blue-500 px-4 py-2 rounded-full"), g.Text("Select")),
					),
				),
			)
		}),
		w.form("back", h.Button(h.Type("submit"), h.Class("text-blue-400 hover:underline"), g.Text("Modify search"))),
	)
}

func (w wizard[T]) booking(d booking.Draft[T]) g.Node {
	if d.Selected == nil {
		return w.search(d)
	}
	return h.Div(
		h.Class("grid grid-cols-1 md:grid-cols-3 gap-6"),
		h.Div(h.Class("md:col-span-2"),
			card(w.form("confirm",
				h.H2(h.Class("text-xl font-semibold"), g.Text("Passenger details")),
				field("Full name", "full_name", "text", d.Contact.FullName, true),
				field("Email", "email", "email", d.Contact.Email, true),
				field("Phone", "phone", "tel", d.Contact.Phone, true),
				submit("Confirm booking"),
			)),
		),
		card(
			h.H2(h.Class("text-xl font-semibold mb-4"), g.Text("Summary")),
			w.detail(*d.Selected),
			h.P(h.Class("mt-4 text-lg font-bold"), g.Text("Total "+money(d.Total()))),
			w.form("back", h.Button(h.Type("submit"), h.Class("mt-4 text-blue-400 hover:underline"), g.Text("Back to results"))),
		),
	)
}

// confirmation refreshes itself once the delay is over so the reset draft
// is shown without user action.
func (w wizard[T]) confirmation(d booking.Draft[T]) g.Node {
	return h.Div(
		h.ID("confirmation"),
		hx.Get(w.path),
		hx.Trigger(fmt.Sprintf("load delay:%ds", w.delay)),
		hx.Select("#content"),
		hx.Target("#content"),
		hx.Swap("outerHTML"),
		card(
			h.H2(h.Class("text-2xl font-semibold text-green-400"), g.Text("Booking confirmed")),
			h.P(h.Class("mt-2"), g.Text("Your reference is ")),
			h.P(h.Class("reference text-3xl font-mono mt-2"), g.Text(d.Reference)),
			h.P(h.Class("mt-4 text-gray-400"), g.Text("A confirmation was sent to "+d.Contact.Email+".")),
		),
	)
}

type stepLabel struct {
	step  booking.Step
	label string
}

var stepLabels = []stepLabel{
	{booking.StepSearch, "Search"},
	{booking.StepResults, "Results"},
	{booking.StepBooking, "Details"},
	{booking.StepConfirmation, "Confirmation"},
}

func steps(current booking.Step) g.Node {
	return h.Ol(
		h.Class("flex space-x-4 text-sm"),
		g.Map(stepLabels, func(l stepLabel) g.Node {
			class := "text-gray-500"
			if l.step == current {
				class = "font-semibold text-blue-400"
			}
			return h.Li(h.Class(class), g.Text(l.label))
		}),
	)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
