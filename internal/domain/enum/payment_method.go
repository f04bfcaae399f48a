package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is the closed set of payment methods a sale can be
// finalized with. It is unset on an open invoice and fixed once the
// invoice is finalized.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota
	PaymentCard
	PaymentCredit
	PaymentCheque
)

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "Card", "Credit", "Cheque"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Cash"
	}
	return names[m]
}

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentCash && m <= PaymentCheque
}

// ParsePaymentMethod converts a method name ("Cash", "Card", ...) into a
// PaymentMethod. The match is exact; unknown names return an error.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "Cash":
		return PaymentCash, nil
	case "Card":
		return PaymentCard, nil
	case "Credit":
		return PaymentCredit, nil
	case "Cheque":
		return PaymentCheque, nil
	}
	return PaymentCash, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
