package pages

import (
	"github.com/nfrund/zippytrip/internal/view/dto"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var (
	travelStyles = []string{"adventure", "relaxation", "culture", "family", "business"}
	budgets      = []string{"budget", "moderate", "luxury"}
	interests    = []string{"hiking", "food", "history", "wildlife", "nightlife", "spirituality"}
)

// Onboarding is the travel preferences questionnaire shown once after sign-up.
func Onboarding(data dto.Onboarding) g.Node {
	return h.Div(
		h.Class("max-w-2xl mx-auto"),
		card(
			h.H2(h.Class("text-2xl font-semibold mb-2"), g.Text("Tell us how you travel")),
			h.P(h.Class("text-gray-400 mb-6"), g.Text("We use this to tailor deals for "+data.Email+".")),
			h.Form(
				h.Method("post"), h.Action("/UserPreferences"), h.Class("space-y-6"),
				radioGroup("Travel style", "travel_style", travelStyles),
				radioGroup("Budget", "budget", budgets),
				h.FieldSet(
					h.Legend(h.Class("text-sm font-medium text-gray-300 mb-2"), g.Text("Interests")),
					h.Div(h.Class("grid grid-cols-2 md:grid-cols-3 gap-2"),
						g.Map(interests, func(v string) g.Node {
							return h.Label(h.Class("flex items-center space-x-2"),
								h.Input(h.Type("checkbox"), h.Name("interests"), h.Value(v)),
								h.Span(g.Text(v)),
							)
						}),
					),
				),
				field("Home city", "home_city", "text", "", false),
				submit("Save preferences"),
			),
		),
	)
}

func radioGroup(label, name string, options []string) g.Node {
	return h.FieldSet(
		h.Legend(h.Class("text-sm font-medium text-gray-300 mb-2"), g.Text(label)),
		h.Div(h.Class("flex flex-wrap gap-3"),
			g.Map(options, func(v string) g.Node {
				return h.Label(h.Class("flex items-center space-x-2 px-3 py-1 rounded-full bg-gray-700"),
					h.Input(h.Type("radio"), h.Name(name), h.Value(v), h.Required()),
					h.Span(g.Text(v)),
				)
			}),
		),
	)
}
