package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/booking"
)

// Recorder persists booking lifecycle events off the request path. Publish
// returns immediately; a failed insert is logged and dropped, never
// surfaced to the transition that produced it.
type Recorder struct {
	repo    Repository
	logger  *zap.Logger
	timeout time.Duration
}

func NewRecorder(repo Repository, logger *zap.Logger) *Recorder {
	return &Recorder{
		repo:    repo,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

func (r *Recorder) Publish(e booking.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		rec := &Record{
			BookingID:  e.BookingID,
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			Actor:      e.Actor,
			OccurredAt: e.OccurredAt,
		}
		if err := r.repo.Create(ctx, rec); err != nil {
			r.logger.Warn("booking event dropped",
				zap.String("booking_id", e.BookingID),
				zap.String("to_status", string(e.ToStatus)),
				zap.Error(err),
			)
			return
		}

		r.logger.Info("booking event recorded",
			zap.String("event_id", rec.ID),
			zap.String("booking_id", rec.BookingID),
			zap.String("from_status", rec.FromStatus),
			zap.String("to_status", rec.ToStatus),
		)
	}()
}
