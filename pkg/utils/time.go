package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps and plain dates. A plain date is the
// start of that day in UTC, or its last second when endOfDay is set.
func ParseDate(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected RFC3339 or YYYY-MM-DD", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
