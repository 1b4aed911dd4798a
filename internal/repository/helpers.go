package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseNullableTime parses a sql.NullString into a *time.Time. NULL or
// empty yields nil.
func parseNullableTime(s sql.NullString, layout string) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString converts a *time.Time into a value for SQLite
// storage: SQL NULL when nil, the formatted string otherwise.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// marshalStrings encodes a string slice as a JSON array for a TEXT
// column. nil encodes as "[]".
func marshalStrings(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(s)
	return string(b)
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	return out, nil
}

// marshalDates encodes a date slice as a JSON array of YYYY-MM-DD.
func marshalDates(dates []time.Time) string {
	if len(dates) == 0 {
		return "[]"
	}
	strs := make([]string, len(dates))
	for i, d := range dates {
		strs[i] = d.Format(dateLayout)
	}
	b, _ := json.Marshal(strs)
	return string(b)
}

func unmarshalDates(raw string) ([]time.Time, error) {
	strs, err := unmarshalStrings(raw)
	if err != nil {
		return nil, err
	}
	if len(strs) == 0 {
		return nil, nil
	}
	out := make([]time.Time, len(strs))
	for i, s := range strs {
		d, err := parseDate(s)
		if err != nil {
			return nil, fmt.Errorf("decoding date %q: %w", s, err)
		}
		out[i] = d
	}
	return out, nil
}
