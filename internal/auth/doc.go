// Package auth checks the admin credential.
//
// There is one operator configured password (Admin.Password, or env ADMIN_PASSWORD).
// It may be stored in plain text or as a bcrypt or Argon2id hash; `folio hash-password`
// prints a bcrypt hash suitable for the config file.
//
// An optional TOTP secret (Admin.TOTPSecret) adds a second factor checked by ValidateTOTP.
//
// Example usage:
//
//	if !auth.ValidateAdminPassword(cfg, in.Password) || !auth.ValidateTOTP(cfg, in.Code) {
//	    return fiber.ErrUnauthorized
//	}
package auth
