package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Pusher is the external push gateway the dispatcher delivers through
type Pusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// Dispatcher fans a batch of targets out to the push gateway. Each target is
// sent independently: one failure never affects sibling deliveries, and the
// batch returns only after every outcome has settled.
type Dispatcher struct {
	pusher  Pusher
	deduper Deduper
	log     *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(pusher Pusher, deduper Deduper, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		pusher:  pusher,
		deduper: deduper,
		log:     log,
	}
}

// Dispatch sends one push per target concurrently and returns (sent, failed)
// counts. The dedup marker is written only after a confirmed successful send,
// so a failed target is never marked delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, targets []Target) (sent, failed int) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, target := range targets {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()

			title, body := RenderMessage(t.OffsetType, t.ReservationTitle)
			data := map[string]string{
				"type":           "reservation_notification",
				"reservation_id": t.ReservationID,
				"offset":         string(t.OffsetType),
			}

			if err := d.pusher.Send(ctx, t.PushToken, title, body, data); err != nil {
				d.log.Error("push send failed",
					zap.String("userID", t.UserID),
					zap.String("reservationID", t.ReservationID),
					zap.String("offset", string(t.OffsetType)),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			if err := d.deduper.MarkNotified(ctx, t.Key()); err != nil {
				// The push went out; a marker failure only risks a duplicate
				d.log.Error("mark notified failed",
					zap.String("key", t.Key().String()),
					zap.Error(err))
			}

			d.log.Debug("push sent",
				zap.String("userID", t.UserID),
				zap.String("reservationID", t.ReservationID),
				zap.String("offset", string(t.OffsetType)))

			mu.Lock()
			sent++
			mu.Unlock()
		}(target)
	}

	wg.Wait()
	return sent, failed
}
