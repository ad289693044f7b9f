package service

import (
	"fmt"
	"time"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// parseDateBound accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. A
// plain date used as an upper bound covers the whole day.
func parseDateBound(raw string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", domain.ErrInvalidDateRange, raw)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// parseDateRange parses optional bounds into filter fields. Empty strings
// leave that side open.
func parseDateRange(startDate, endDate string) (from, to *time.Time, err error) {
	if startDate != "" {
		t, err := parseDateBound(startDate, false)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if endDate != "" {
		t, err := parseDateBound(endDate, true)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: startDate is after endDate", domain.ErrInvalidDateRange)
	}
	return from, to, nil
}
