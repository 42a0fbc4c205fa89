package models

// Session is a server side admin session record. Logging out deletes it.
type Session struct {
	// ID is the session id carried in the signed session token.
	ID string `gorm:"primaryKey;size:64"`
	// Data is opaque to the store.
	Data []byte
	// ExpiresAt is epoch seconds, 0 never expires.
	ExpiresAt int64 `gorm:"not null;default:0;index"`
}

// TableName specifies the database table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
