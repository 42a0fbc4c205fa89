package setting

import "errors"

var (
	// ErrSettingKeyEmpty is returned when a setting key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrInvalidValue is returned when a value is not valid JSON or does not fit its known key.
	ErrInvalidValue = errors.New("invalid setting value")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
