package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are the formats accepted from the persisted document.
// Period bounds are usually bare dates, session bounds local datetimes, and
// alert times full RFC3339 UTC instants.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp wraps time.Time with the document's flexible parse rules. It
// always marshals back as RFC3339 UTC so alert times stay absolute no matter
// what the host timezone is.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("models: timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("models: unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// DayLabel is an activity's day identifier. Documents written by older
// versions store it as a bare number, newer ones as a string; both are
// accepted and normalized to a string.
type DayLabel string

func (d *DayLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DayLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DayLabel(n.String())
		return nil
	}
	return fmt.Errorf("models: day label must be a string or number, got %s", data)
}

func (d DayLabel) String() string { return string(d) }
