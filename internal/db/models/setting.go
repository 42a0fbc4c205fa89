// Package models contains database model definitions.
package models

// Setting is one site setting. Value holds the JSON encoding of the setting value.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Key   string `gorm:"size:100;not null;uniqueIndex"`
	Value string `gorm:"type:text;not null"`
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
