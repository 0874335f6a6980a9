package flow

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Receipt acknowledges a submission.
type Receipt struct {
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submitter receives a fully assembled, valid record.
type Submitter[T any] interface {
	Submit(ctx context.Context, record T) (Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc[T any] func(ctx context.Context, record T) (Receipt, error)

// Submit calls fn.
func (fn SubmitterFunc[T]) Submit(ctx context.Context, record T) (Receipt, error) {
	return fn(ctx, record)
}

// LogSubmitter stands in for a real submission: it logs the payload and
// acknowledges it with a fixed message.
type LogSubmitter[T any] struct {
	Logger  *zap.Logger
	Message string
	Now     func() time.Time
}

// Submit implements Submitter.
func (s LogSubmitter[T]) Submit(ctx context.Context, record T) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	logger.Info("final submitted data", zap.Any("payload", record))
	return Receipt{Message: s.Message, SubmittedAt: now().UTC()}, nil
}

const (
	profileSubmittedMessage = "Profile Submitted Successfully!"
	jobPostSubmittedMessage = "Job Post Submitted (Simulated)"
)
