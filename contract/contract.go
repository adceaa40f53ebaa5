//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"sms-scheduler/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// It is only used to label supervision logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IBlobStore is an opaque key -> string persistence.
// A Set is atomic per key.
type IBlobStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// DeliveryCapability owns the real timer and transmission of a message.
// Schedule and Cancel are fire-and-forget: the delivery result arrives later on Outcomes.
// Implementations wrap errors.ErrCapabilityUnavailable when an operation cannot be served at all.
type DeliveryCapability interface {
	Schedule(ctx context.Context, id, recipient, body string, atEpochMillis int64) error
	Cancel(ctx context.Context, id string) error
	CanScheduleExactTiming(ctx context.Context) (bool, error)
	OpenExactTimingSettings(ctx context.Context) error
	Outcomes() <-chan domain.DeliveryOutcome
}

// PermissionGate acquires the basic right to send messages. It may prompt the user.
type PermissionGate interface {
	EnsureSendCapability(ctx context.Context) (bool, error)
}

// Prompter asks the user how to proceed when exact timing is not granted.
type Prompter interface {
	ChooseExactTiming(ctx context.Context) domain.ExactTimingChoice
}

// Confirmation is the yes/no decision taken before a destructive action.
// id is empty for a bulk clear.
type Confirmation func(ctx context.Context, id string) bool

// OutcomeHandler reconciles a delivery outcome with the stored schedule.
// It never fails: outcomes that cannot be applied are dropped.
type OutcomeHandler interface {
	ApplyOutcome(ctx context.Context, outcome domain.DeliveryOutcome)
}

type StatsProvider interface {
	Stats(ctx context.Context) (domain.Stats, error)
}
