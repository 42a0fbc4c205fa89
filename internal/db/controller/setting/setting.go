// Package setting stores site settings as JSON values keyed by name.
package setting

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/db/models"
)

var keyColumn = []clause.Column{{Name: "key"}}

// GetAll returns every stored setting keyed by name.
func GetAll(db *gorm.DB) (map[string]json.RawMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.Setting
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	out := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		out[row.Key] = json.RawMessage(row.Value)
	}

	return out, nil
}

// Get returns the raw value stored under key, or nil if the key was never set.
func Get(db *gorm.DB, key string) (json.RawMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var row models.Setting

	err := db.Where(&models.Setting{Key: key}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}

	return json.RawMessage(row.Value), nil
}

// GetInto decodes the value stored under key into v. It reports whether the key exists.
func GetInto(db *gorm.DB, key string, v any) (bool, error) {
	raw, err := Get(db, key)
	if err != nil || raw == nil {
		return false, err
	}

	if err = json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %s", ErrInvalidValue, key, err.Error())
	}

	return true, nil
}

// Set stores the JSON encoding of value under key, replacing any previous value.
// A json.RawMessage is stored as is.
func Set(db *gorm.DB, key string, value any) error {
	if db == nil {
		return ErrDBNil
	}

	raw, err := encode(key, value)
	if err != nil {
		return err
	}

	return upsert(db, key, raw)
}

// SetMany validates and stores every entry in one transaction. Nothing is written if one entry is invalid.
func SetMany(db *gorm.DB, values map[string]json.RawMessage) error {
	if db == nil {
		return ErrDBNil
	}

	keys := make([]string, 0, len(values))
	for key, raw := range values {
		if err := Validate(key, raw); err != nil {
			return err
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsert(tx, key, values[key]); err != nil {
				return err
			}
		}

		return nil
	})
}

// Initialize stores every default whose key is missing. Existing values are kept.
func Initialize(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	defaults := Defaults()
	rows := make([]models.Setting, 0, len(defaults))

	for key, value := range defaults {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode default %s: %w", key, err)
		}

		rows = append(rows, models.Setting{Key: string(key), Value: string(raw)})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	err := db.Clauses(clause.OnConflict{Columns: keyColumn, DoNothing: true}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("initialize settings: %w", err)
	}

	return nil
}

func encode(key string, value any) (json.RawMessage, error) {
	var raw json.RawMessage

	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidValue, key, err.Error())
		}

		raw = b
	}

	if err := Validate(key, raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// upsert writes key in a single statement so concurrent writers cannot create a duplicate row.
func upsert(db *gorm.DB, key string, raw json.RawMessage) error {
	row := models.Setting{Key: key, Value: string(raw)}

	err := db.Clauses(clause.OnConflict{
		Columns:   keyColumn,
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}

	return nil
}
