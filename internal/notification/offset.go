package notification

import "time"

// OffsetType identifies a configured notification moment relative to a
// reservation's scheduled time
type OffsetType string

const (
	OneHourBefore   OffsetType = "one_hour_before"
	ThirtyMinBefore OffsetType = "thirty_min_before"
	FiveMinBefore   OffsetType = "five_min_before"
	FiveMinAfter    OffsetType = "five_min_after"
)

// Offset is a static notification configuration. TargetMinutes is the signed
// distance from "now" to the reservation time when the offset fires: +60
// means the reservation is an hour away, -5 means it happened five minutes
// ago.
type Offset struct {
	Type          OffsetType
	TargetMinutes int
	Label         string
}

// DefaultOffsets returns the fixed offset configuration: three reminders
// before the meetup and one result-request after it.
func DefaultOffsets() []Offset {
	return []Offset{
		{Type: OneHourBefore, TargetMinutes: 60, Label: "1 hour before"},
		{Type: ThirtyMinBefore, TargetMinutes: 30, Label: "30 minutes before"},
		{Type: FiveMinBefore, TargetMinutes: 5, Label: "5 minutes before"},
		{Type: FiveMinAfter, TargetMinutes: -5, Label: "5 minutes after"},
	}
}

// MinuteWindow returns the inclusive minute-granularity window containing
// target: [start of target's minute, start + 59.999s]. The one-minute width
// matches the scheduler's polling cadence so each reservation minute is
// matched by exactly one tick.
func MinuteWindow(target time.Time) (start, end time.Time) {
	start = target.Truncate(time.Minute)
	end = start.Add(time.Minute - time.Millisecond)
	return start, end
}
