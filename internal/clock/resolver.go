package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp reports a reminder time string that could not be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// layouts accepted for client-supplied reminder times, tried in order.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Resolver interprets unqualified client timestamps in a fixed source
// timezone and normalizes them to UTC for storage and comparison.
type Resolver struct {
	loc *time.Location
}

// NewResolver builds a resolver for the given IANA timezone name.
func NewResolver(timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Resolver{loc: loc}, nil
}

// Location returns the source timezone the resolver interprets input in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve parses a local timestamp string in the source timezone and returns
// the corresponding instant in UTC.
func (r *Resolver) Resolve(raw string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, r.loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}
