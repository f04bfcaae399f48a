package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice. A new
// invoice starts Open (possibly with zero lines), moves to Held when
// parked on the held stack, and becomes Finalized when payment is
// accepted. Finalized is terminal.
type InvoiceStatus int

const (
	InvoiceOpen InvoiceStatus = iota
	InvoiceHeld
	InvoiceFinalized
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Open", "Held", "Finalized"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = InvoiceOpen
	case "Held":
		*s = InvoiceHeld
	case "Finalized":
		*s = InvoiceFinalized
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceOpen
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
