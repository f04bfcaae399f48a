package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ChequeStatus tracks a cheque attached to a finalized sale.
type ChequeStatus int

const (
	ChequePending ChequeStatus = iota
	ChequeCleared
	ChequeBounced
)

func (s ChequeStatus) String() string {
	names := [...]string{"Pending", "Cleared", "Bounced"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s ChequeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ChequeStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ChequeStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ChequePending
	case "Cleared":
		*s = ChequeCleared
	case "Bounced":
		*s = ChequeBounced
	}
	return nil
}

func (s ChequeStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ChequeStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ChequePending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ChequeStatus(v)
	case int:
		*s = ChequeStatus(v)
	}
	return nil
}
