package workers

import (
	"context"
	"log/slog"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
)

var _ contract.Worker = (*OutcomeWorker)(nil)

// OutcomeWorker feeds delivery outcomes, in arrival order, into the handler.
// The handler is the same serialization point as user actions, so outcomes never
// mutate the schedule from the side.
type OutcomeWorker struct {
	log      *slog.Logger
	outcomes <-chan domain.DeliveryOutcome
	handler  contract.OutcomeHandler
}

func NewOutcomeWorker(log *slog.Logger, outcomes <-chan domain.DeliveryOutcome, handler contract.OutcomeHandler) *OutcomeWorker {
	return &OutcomeWorker{log: log, outcomes: outcomes, handler: handler}
}

func (w *OutcomeWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping outcome worker")
			return nil
		case outcome, ok := <-w.outcomes:
			if !ok {
				w.log.Info("Outcome channel closed")
				return nil
			}
			w.handler.ApplyOutcome(ctx, outcome)
		}
	}
}
