package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	resdomain "meetup-backend/internal/reservation/domain"
)

// ReservationSource is the read-only view of the reservation store the
// scheduler needs. reservation/repository.ReservationRepository satisfies it.
type ReservationSource interface {
	FindInWindow(start, end time.Time) ([]*resdomain.Reservation, error)
	FindParticipants(reservationID string) ([]resdomain.ParticipantInfo, error)
}

// Scheduler periodically scans upcoming reservations and dispatches push
// notifications at the configured offsets.
type Scheduler struct {
	reservations ReservationSource
	deduper      Deduper
	dispatcher   *Dispatcher
	log          *zap.Logger
	offsets      []Offset
	interval     time.Duration
	nowFunc      func() time.Time
}

// NewScheduler creates a Scheduler with the default offset configuration
func NewScheduler(reservations ReservationSource, deduper Deduper, dispatcher *Dispatcher, log *zap.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		reservations: reservations,
		deduper:      deduper,
		dispatcher:   dispatcher,
		log:          log,
		offsets:      DefaultOffsets(),
		interval:     interval,
		nowFunc:      time.Now,
	}
}

// Run starts the tick loop until ctx is canceled. Ticks are consumed by a
// single goroutine, so an overrunning tick delays the next one instead of
// running concurrently with it.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("notification scheduler starting", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("notification scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one scheduling cycle. A panic inside a cycle is logged and
// swallowed so the loop survives to the next tick.
func (s *Scheduler) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scheduler tick panicked", zap.Any("panic", r))
		}
	}()

	// Capture now once so every offset in this tick sees the same instant
	now := s.nowFunc()

	targets := s.collectTargets(ctx, now)
	if len(targets) == 0 {
		return
	}

	sent, failed := s.dispatcher.Dispatch(ctx, targets)
	s.log.Info("notification batch settled",
		zap.Int("targets", len(targets)),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
}

// collectTargets walks every configured offset and builds the eligible,
// not-yet-notified targets for this tick. A failure while processing one
// offset is logged and isolated: the remaining offsets still run.
func (s *Scheduler) collectTargets(ctx context.Context, now time.Time) []Target {
	var targets []Target

	for _, offset := range s.offsets {
		start, end := MinuteWindow(now.Add(time.Duration(offset.TargetMinutes) * time.Minute))

		reservations, err := s.reservations.FindInWindow(start, end)
		if err != nil {
			s.log.Error("reservation window query failed",
				zap.String("offset", string(offset.Type)),
				zap.Time("windowStart", start),
				zap.Error(err))
			continue
		}

		for _, reservation := range reservations {
			participants, err := s.reservations.FindParticipants(reservation.ID)
			if err != nil {
				s.log.Error("participant query failed",
					zap.String("reservationID", reservation.ID),
					zap.String("offset", string(offset.Type)),
					zap.Error(err))
				continue
			}

			for _, participant := range participants {
				// Participants without a push token are not eligible
				if participant.PushToken == "" {
					continue
				}

				key := Key{
					ReservationID: reservation.ID,
					UserID:        participant.UserID,
					OffsetType:    offset.Type,
				}
				notified, err := s.deduper.HasBeenNotified(ctx, key)
				if err != nil {
					s.log.Error("dedup lookup failed", zap.String("key", key.String()), zap.Error(err))
					continue
				}
				if notified {
					continue
				}

				targets = append(targets, Target{
					UserID:           participant.UserID,
					ReservationID:    reservation.ID,
					ReservationTitle: reservation.Title,
					PushToken:        participant.PushToken,
					Nickname:         participant.Nickname,
					OffsetType:       offset.Type,
				})
			}
		}
	}

	return targets
}
