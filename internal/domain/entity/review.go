package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer review. Submissions start unapproved and become
// publicly visible only after moderation.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      string    `gorm:"size:50;not null" json:"phone"`
	Rating     int       `gorm:"not null" json:"rating"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new review
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
