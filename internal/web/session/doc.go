// Package session manages admin sessions.
//
// A session is a random id stored server side in a fiber.Storage with an expiry.
// The browser holds an HS256 signed token in the admin_session cookie whose jti is
// that id. Verify checks only the token, IsAuthenticated also requires the stored
// record, so Destroy revokes a session before its token expires.
package session
