// Package main provides the entry point of folio, a personal portfolio site.
// It serves the public pages (home, about, projects, contact) and an admin
// area with a JSON API managing projects, contact messages and site settings.
// Data is persisted with gorm in sqlite, MySQL or PostgreSQL and the admin
// area is protected by a single configured password and a signed session cookie.
package main
