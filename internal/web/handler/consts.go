package handler

const (
	// BaseLayout is the layout of public pages.
	BaseLayout = "layouts/base"

	// AdminLayout is the layout of admin pages.
	AdminLayout = "layouts/admin"

	// RootPath is the root path of a route group.
	RootPath = "/"

	// APIPath prefixes every JSON route.
	APIPath = "/api"

	// AdminPath is the admin dashboard and the prefix guarded by the route guard.
	AdminPath = "/admin"

	// AdminLoginPath is the admin login page.
	AdminLoginPath = "/admin/login"

	// AdminLogoutPath clears the admin session.
	AdminLogoutPath = "/admin/logout"

	// ErrNilACDFatalLogMsg is used if app, cfg, db or the session manager is nil.
	ErrNilACDFatalLogMsg = "app, cfg, db or session manager is nil"
)
