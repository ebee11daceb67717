package service

import "time"

// Clock supplies "now" and the location calendar days are counted in.
type Clock struct {
	Now func() time.Time
	Loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Loc: loc}
}

// Today is now expressed in the clock's location.
func (c Clock) Today() time.Time {
	return c.Now().In(c.Loc)
}
