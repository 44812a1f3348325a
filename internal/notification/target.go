package notification

// Target is one planned push delivery: a (user, reservation, offset) unit
// computed during a tick. Targets are never persisted; they live only for
// the duration of one dispatch batch.
type Target struct {
	UserID           string
	ReservationID    string
	ReservationTitle string
	PushToken        string
	Nickname         string
	OffsetType       OffsetType
}

// Key returns the deduplication key for this target
func (t Target) Key() Key {
	return Key{
		ReservationID: t.ReservationID,
		UserID:        t.UserID,
		OffsetType:    t.OffsetType,
	}
}
