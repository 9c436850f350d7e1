package pages

import (
	"github.com/nfrund/zippytrip/internal/view/dto"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// AuthForm renders the sign-in or sign-up form.
func AuthForm(data dto.AuthForm) g.Node {
	signup := data.Mode == "signup"
	heading, action, toggleText, toggleHref := "Welcome back", "Sign in", "Need an account? Sign up", "/auth?mode=signup"
	if signup {
		heading, action, toggleText, toggleHref = "Create your account", "Sign up", "Already have an account? Sign in", "/auth?mode=login"
	}

	return h.Div(
		h.Class("max-w-md mx-auto"),
		card(
			h.H2(h.Class("text-2xl font-semibold mb-6 text-center"), g.Text(heading)),
			h.Form(
				h.Method("post"), h.Action("/auth"), h.Class("space-y-4"),
				hidden("mode", data.Mode),
				field("Email", "email", "email", data.Email, true),
				field("Password", "password", "password", "", true),
				g.If(!signup, h.Label(
					h.Class("flex items-center space-x-2 text-sm text-gray-300"),
					h.Input(h.Type("checkbox"), h.Name("remember"), h.Value("true")),
					h.Span(g.Text("Remember me")),
				)),
				submit(action),
			),
			g.If(len(data.Providers) > 0, h.Div(
				h.Class("mt-6 space-y-2"),
				h.P(h.Class("text-center text-sm text-gray-400"), g.Text("or continue with")),
				g.Map(data.Providers, func(p string) g.Node {
					return h.A(
						h.Href("/auth/oauth/"+p),
						h.Class("block text-center w-full border border-gray-600 hover:bg-gray-700 py-2 rounded-lg"),
						g.Text(cases.Title(language.English).String(p)),
					)
				}),
			)),
			h.P(h.Class("mt-6 text-center text-sm"),
				h.A(h.Href(toggleHref), h.Class("text-blue-400 hover:underline"), g.Text(toggleText)),
			),
		),
	)
}
