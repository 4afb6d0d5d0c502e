package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusUnpaid  InvoiceStatus = 0
	InvoiceStatusPartial InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceStatusUnpaid:
		return "Unpaid"
	case InvoiceStatusPartial:
		return "Partial"
	case InvoiceStatusPaid:
		return "Paid"
	}
	return "Unknown"
}

// IsValid reports whether s is one of the defined statuses
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPartial || s == InvoiceStatusPaid
}

// ParseInvoiceStatus maps a status name to its enum value
func ParseInvoiceStatus(str string) (InvoiceStatus, bool) {
	switch str {
	case "Unpaid":
		return InvoiceStatusUnpaid, true
	case "Partial":
		return InvoiceStatusPartial, true
	case "Paid":
		return InvoiceStatusPaid, true
	}
	return InvoiceStatusUnpaid, false
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	parsed, ok := ParseInvoiceStatus(str)
	if !ok {
		return fmt.Errorf("unknown invoice status %q", str)
	}
	*s = parsed
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
