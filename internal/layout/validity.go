package layout

import "time"

// Validity is the paid-through window derived from a student's payment fields.
type Validity struct {
	Start   time.Time
	Expiry  time.Time
	Months  int
	Expired bool
}

// ValidityWindow computes the validity window for a student at the given time.
// Start falls back to now when no payment date is stored; expiry falls back to
// start plus the duration in months (default 1) when no due date is stored.
func ValidityWindow(now time.Time, s StudentInfo) Validity {
	months := 1
	if s.DurationMonths != nil && *s.DurationMonths > 0 {
		months = *s.DurationMonths
	}

	start := now
	if s.PaymentDateParsed != nil {
		start = *s.PaymentDateParsed
	}

	expiry := start.AddDate(0, months, 0)
	if s.DueDateParsed != nil {
		expiry = *s.DueDateParsed
	}

	return Validity{
		Start:   start,
		Expiry:  expiry,
		Months:  months,
		Expired: now.After(expiry),
	}
}
