// Package navigation describes the page header: title, top links and breadcrumbs.
package navigation

// Link is an entry of the top bar or of the breadcrumb trail.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context is the navigation state handed to the base layout.
type Context struct {
	PageTitle   string
	ActivePage  string
	Links       []Link
	Breadcrumbs []Link
}

// Page names used as ActivePage.
const (
	PageSettings = "settings"
	PageAPI      = "api"
)

// topLinks is the fixed header menu, keyed by page name.
var topLinks = []struct { //nolint:gochecknoglobals
	page  string
	title string
	url   string
}{
	{page: PageSettings, title: "Advanced settings", url: "/settings"},
	{page: PageAPI, title: "Settings API", url: "/api/settings"},
}

// NewContext creates the navigation for activePage with the header menu filled in.
func NewContext(pageTitle, activePage string) *Context {
	c := &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Links:       make([]Link, 0, len(topLinks)),
		Breadcrumbs: make([]Link, 0),
	}

	for _, l := range topLinks {
		c.Links = append(c.Links, Link{Title: l.title, URL: l.url, Active: l.page == activePage})
	}

	return c
}

// AddBreadcrumb appends to the breadcrumb trail.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive reports whether page is the page being rendered.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
