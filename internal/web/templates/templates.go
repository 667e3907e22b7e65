// Package templates renders the admin pages.
//
// Pages are html/template sets sharing a layout and partials, exposed as
// templ components so handlers render everything through one interface.
package templates

import (
	"embed"
	"html/template"
	"strings"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"lower": strings.ToLower,
}

var (
	listSet      = parsePage("list.html")
	formSet      = parsePage("form.html")
	dashboardSet = parsePage("dashboard.html")
	notFoundSet  = parsePage("notfound.html")
	errorSet     = parsePage("error.html")
)

// parsePage builds the template set for a single page. Panics on a
// malformed template since the files are embedded at build time.
func parsePage(page string) *template.Template {
	return template.Must(
		template.New(page).Funcs(funcs).ParseFS(files, "html/layout.html", "html/partials.html", "html/"+page),
	)
}

func component(set *template.Template, data any) templ.Component {
	return templ.FromGoHTML(set.Lookup("layout"), data)
}

// ListPage renders an entity listing.
func ListPage(v ListView) templ.Component {
	return component(listSet, v)
}

// FormPage renders a create or edit form.
func FormPage(v FormView) templ.Component {
	return component(formSet, v)
}

// DashboardPage renders the overview.
func DashboardPage(v DashboardView) templ.Component {
	return component(dashboardSet, v)
}

// NotFoundPage renders the 404 page.
func NotFoundPage(v NotFoundView) templ.Component {
	return component(notFoundSet, v)
}

// ErrorPage renders a full-page error with its user-facing message.
func ErrorPage(v ErrorView) templ.Component {
	return component(errorSet, v)
}
