// Package auth provides the admin route guard and the session requirement
// of the admin JSON API.
//
// Guard runs ahead of every /admin page. It only checks the signature and
// expiry of the session cookie so a page request never touches the session
// storage:
//   - a request for an admin page without a valid token is redirected to
//     the login page
//   - a request for the login page with a valid token is redirected to the
//     dashboard
//
// RequireSession protects the admin JSON API. It also checks that the
// server side record of the session still exists, so a session revoked by
// logout is rejected with 401. RequirePageSession does the same check for
// admin pages that show private data and sends the request back to the
// login page with the cookie cleared.
//
// Usage:
//
//	app.Use(handler.AdminPath, authmiddleware.Guard(sm))
//	api := app.Group("/api/projects", authmiddleware.RequireSession(sm))
package auth
