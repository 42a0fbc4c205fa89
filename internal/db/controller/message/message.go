// Package message provides data access for contact form messages.
package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrMessageNotFound is returned when no message has the given id.
	ErrMessageNotFound = errors.New("message not found")
	// ErrInvalidMessage is returned when a contact submission fails validation.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Input is a contact form submission.
type Input struct {
	Name    string `json:"name"    form:"name"    validate:"required,max=255"`
	Email   string `json:"email"   form:"email"   validate:"required,email,max=255"`
	Message string `json:"message" form:"message" validate:"required,max=10000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// GetAll returns every message, newest first.
func GetAll(db *gorm.DB) ([]models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []models.Message

	err := db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	return out, nil
}

// UnreadCount returns the number of messages not marked read.
func UnreadCount(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Message{}).Where(map[string]any{"read": false}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}

	return count, nil
}

// Create validates in and stores it as an unread message.
func Create(db *gorm.DB, in Input) (*models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: name, a valid email and a message are required", ErrInvalidMessage)
	}

	m := models.Message{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return &m, nil
}

// SetRead sets the read flag of message id and returns the updated message.
func SetRead(db *gorm.DB, id uint64, read bool) (*models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.Message{}).Where("id = ?", id).Update("read", read)
	if result.Error != nil {
		return nil, fmt.Errorf("update message: %w", result.Error)
	}

	var m models.Message

	err := db.Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	return &m, nil
}

// Delete removes message id permanently.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete message: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
