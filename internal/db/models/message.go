package models

// Message is a contact form submission.
type Message struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Read      bool   `gorm:"not null;default:false;index" json:"read"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index" json:"createdAt"`
}

// TableName specifies the database table name for the Message model.
func (Message) TableName() string {
	return "messages"
}
