package payment

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var ErrEmptyReference = apperror.New(http.StatusBadRequest, "payment reference is required")

// Processor charges an externally prepared payment. It is called
// synchronously before a booking commits; a returned error aborts the
// booking with no state change.
type Processor interface {
	Charge(ctx context.Context, paymentRef string, amountCredits int) error
}

// LogProcessor accepts any non-empty payment reference and records the
// charge. It stands in until a gateway client is wired.
type LogProcessor struct {
	logger *zap.Logger
}

func NewLogProcessor(logger *zap.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

func (p *LogProcessor) Charge(ctx context.Context, paymentRef string, amountCredits int) error {
	if paymentRef == "" {
		return ErrEmptyReference
	}
	p.logger.Info("payment charged",
		zap.String("payment_ref", paymentRef),
		zap.Int("amount_credits", amountCredits),
	)
	return nil
}
