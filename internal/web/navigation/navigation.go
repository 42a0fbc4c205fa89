// Package navigation builds the navigation state handed to page templates.
package navigation

// Sections of the site. Each page belongs to one.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionProjects = "projects"
	SectionContact  = "contact"
	SectionAdmin    = "admin"
)

// Link is one entry of the site menu or of a breadcrumb trail.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context is the navigation state of a rendered page.
type Context struct {
	ActiveSection string
	ActivePage    string
	PageTitle     string
	Breadcrumbs   []Link
}

var siteMenu = []Link{
	{Title: "Home", URL: "/"},
	{Title: "About", URL: "/about"},
	{Title: "Projects", URL: "/projects"},
	{Title: "Contact", URL: "/contact"},
}

var sectionOf = map[string]string{
	"/":         SectionHome,
	"/about":    SectionAbout,
	"/projects": SectionProjects,
	"/contact":  SectionContact,
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]Link, 0),
	}
}

// AddBreadcrumb appends a breadcrumb and returns c for chaining.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{Title: title, URL: url, Active: active})

	return c
}

// Menu returns the public site menu with the entry of the active section marked.
func (c *Context) Menu() []Link {
	out := make([]Link, len(siteMenu))

	for i, l := range siteMenu {
		l.Active = sectionOf[l.URL] == c.ActiveSection
		out[i] = l
	}

	return out
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
