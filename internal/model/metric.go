package model

import (
	"encoding/json"
	"strconv"
)

// Metric is a numeric value that may be absent, e.g. a growth percentage
// that cannot be computed for lack of data.
type Metric struct {
	Value float64
	Valid bool
}

// Present returns a valid Metric holding v.
func Present(v float64) Metric { return Metric{Value: v, Valid: true} }

// Absent returns the absent Metric.
func Absent() Metric { return Metric{} }

// String formats the value with two decimals, or "N/A" when absent.
func (m Metric) String() string {
	if !m.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Absent()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Present(v)
	return nil
}
