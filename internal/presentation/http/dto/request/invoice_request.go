package request

// InvoiceItemRequest represents one line item in an invoice payload.
// Any supplied total is ignored; totals are derived server-side.
type InvoiceItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// CreateInvoiceRequest represents a create invoice request. Dates use the
// YYYY-MM-DD form, status is the string name ("Unpaid", "Partial", "Paid").
type CreateInvoiceRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerEmail   *string              `json:"customer_email"`
	CustomerAddress *string              `json:"customer_address"`
	Items           []InvoiceItemRequest `json:"items"`
	Tax             float64              `json:"tax"`
	Discount        float64              `json:"discount"`
	Status          string               `json:"status"`
	PaidAmount      float64              `json:"paid_amount"`
	DueDate         string               `json:"due_date"`
}

// UpdateInvoiceRequest represents a partial invoice update. Absent fields
// are left unchanged; a non-null items array replaces the line items.
type UpdateInvoiceRequest struct {
	CustomerName    *string              `json:"customer_name"`
	CustomerPhone   *string              `json:"customer_phone"`
	CustomerEmail   *string              `json:"customer_email"`
	CustomerAddress *string              `json:"customer_address"`
	Items           []InvoiceItemRequest `json:"items"`
	Tax             *float64             `json:"tax"`
	Discount        *float64             `json:"discount"`
	Status          *string              `json:"status"`
	PaidAmount      *float64             `json:"paid_amount"`
	DueDate         *string              `json:"due_date"`
}

// ContactRequest represents a public contact-form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ReviewRequest represents a public review submission
type ReviewRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// SetReadRequest toggles the read flag on a contact
type SetReadRequest struct {
	IsRead bool `json:"is_read"`
}

// SetApprovedRequest toggles moderation approval on a review
type SetApprovedRequest struct {
	IsApproved bool `json:"is_approved"`
}
