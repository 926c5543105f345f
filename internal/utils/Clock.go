package utils

import "time"

// ISODate is the calendar-day format every stored transaction date uses.
const ISODate = "2006-01-02"

// Clock supplies "now" to everything that stamps dates or ids, so tests can
// pin the current day.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until SetNow moves it.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// FormatDate renders t as an ISODate day string, dropping the time of day.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseDate parses an ISODate day string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}
