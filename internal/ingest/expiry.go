package ingest

import "time"

// ComputeExpiry returns now's calendar date plus relativeDays days, truncated
// to a date-only value in now's location. relativeDays may be zero or
// negative; no bounds are enforced here — a negative value simply yields a
// past date.
func ComputeExpiry(now time.Time, relativeDays int) time.Time {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.AddDate(0, 0, relativeDays)
}
