package payload

import "time"

// TimestampLayout renders a second-precision timestamp with the numeric
// offset, e.g. 2026-10-17T09:30:00+08:00.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Zone is the fixed UTC+8 offset every timestamp is expressed in, whatever
// the host's local zone is.
var Zone = time.FixedZone("UTC+8", 8*60*60)

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Timestamp formats t in Zone.
func Timestamp(t time.Time) string {
	return t.In(Zone).Format(TimestampLayout)
}

// Tomorrow returns midnight of the day after t, in Zone.
func Tomorrow(t time.Time) time.Time {
	local := t.In(Zone)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, Zone)
}
