package workers

import (
	"context"
	"log/slog"
	"sms-scheduler/domain"
	"sms-scheduler/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutcomeWorker_ForwardsOutcomesInOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := mocks.NewMockOutcomeHandler(ctrl)

	outcomes := make(chan domain.DeliveryOutcome, 2)
	outcomes <- domain.DeliveryOutcome{ID: "m1", Outcome: domain.StatusSent}
	outcomes <- domain.DeliveryOutcome{ID: "m2", Outcome: domain.StatusFailed}
	close(outcomes)

	gomock.InOrder(
		handler.EXPECT().ApplyOutcome(gomock.Any(), domain.DeliveryOutcome{ID: "m1", Outcome: domain.StatusSent}),
		handler.EXPECT().ApplyOutcome(gomock.Any(), domain.DeliveryOutcome{ID: "m2", Outcome: domain.StatusFailed}),
	)

	worker := NewOutcomeWorker(slog.Default(), outcomes, handler)

	// Then a closed channel ends the worker cleanly
	req.NoError(worker.Run(context.Background()))
}

func TestOutcomeWorker_StopsOnContextDone(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := mocks.NewMockOutcomeHandler(ctrl)
	handler.EXPECT().ApplyOutcome(gomock.Any(), gomock.Any()).Times(0)

	worker := NewOutcomeWorker(slog.Default(), make(chan domain.DeliveryOutcome), handler)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req.NoError(worker.Run(ctx))
}
