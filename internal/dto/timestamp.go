package dto

import (
	"encoding/json"
	"time"

	"shareit-backend/internal/parse"
)

// Timestamp is a booking time on the wire: "2006-01-02T15:04:05", no zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(parse.TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := parse.Timestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
