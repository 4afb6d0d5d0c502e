package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is a billing record for one customer transaction. Deletes are
// physical: a removed invoice leaves no tombstone.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber   string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerName    string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   string             `gorm:"size:50;not null" json:"customer_phone"`
	CustomerEmail   *string            `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerAddress *string            `gorm:"type:text" json:"customer_address,omitempty"`
	Subtotal        float64            `gorm:"not null" json:"subtotal"`
	Tax             float64            `gorm:"default:0" json:"tax"`
	Discount        float64            `gorm:"default:0" json:"discount"`
	GrandTotal      float64            `gorm:"not null" json:"grand_total"`
	PaidAmount      float64            `gorm:"default:0" json:"paid_amount"`
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	ShareSlug       string             `gorm:"size:64;uniqueIndex;not null" json:"share_slug"`
	DueDate         time.Time          `gorm:"type:date;not null" json:"due_date"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BalanceDue returns the amount still outstanding
func (i *Invoice) BalanceDue() float64 {
	return i.GrandTotal - i.PaidAmount
}

// InvoiceItem is one billed line of an invoice. Position preserves the
// order the admin entered the lines in.
type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position    int       `gorm:"not null" json:"-"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	Total       float64   `gorm:"not null" json:"total"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceSequence is the per-year counter behind invoice numbering. The row
// is bumped atomically so two concurrent creates can never observe the same
// sequence value.
type InvoiceSequence struct {
	Year    int   `gorm:"primary_key"`
	LastSeq int64 `gorm:"not null"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
