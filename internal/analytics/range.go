package analytics

import (
	"fmt"
	"time"

	"github.com/salesdash/salesdash/internal/dataset"
)

// DateLayout is the wire format for calendar dates on the API.
const DateLayout = "2006-01-02"

// Range is an inclusive calendar-date interval selecting the slice of
// the working table every view is computed over.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FullRange returns the range covering the whole snapshot.
func FullRange(snap *dataset.Snapshot) Range {
	return Range{Start: snap.MinDate, End: snap.MaxDate}
}

// ParseRange builds a range from YYYY-MM-DD strings. Empty strings fall
// back to the snapshot bounds, so a bare request means "everything".
func ParseRange(start, end string, snap *dataset.Snapshot) (Range, error) {
	r := FullRange(snap)
	if start != "" {
		ts, err := time.Parse(DateLayout, start)
		if err != nil {
			return Range{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		r.Start = ts.UTC()
	}
	if end != "" {
		ts, err := time.Parse(DateLayout, end)
		if err != nil {
			return Range{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		r.End = ts.UTC()
	}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate rejects reversed ranges; the picker must never submit one.
func (r Range) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("start date %s is after end date %s",
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Clamp clips the range into the snapshot's date bounds so the picker
// cannot address dates the data does not have.
func (r Range) Clamp(snap *dataset.Snapshot) Range {
	if r.Start.Before(snap.MinDate) {
		r.Start = snap.MinDate
	}
	if r.End.After(snap.MaxDate) {
		r.End = snap.MaxDate
	}
	return r
}

// Contains reports whether a calendar date falls inside the range.
func (r Range) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Filter narrows the working table to records whose order date falls in
// the range. The input slice is never mutated.
func Filter(records []dataset.Record, r Range) []dataset.Record {
	filtered := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Day()) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
