package service

import "time"

// Clock supplies the current time for paste creation and expiry checks.
// Tests substitute a fixed or movable clock.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time in UTC, so stored
// createdAt and expiresAt values carry no local offset.
type RealClock struct{}

// Now returns the current UTC time.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
