package errors

import "fmt"

var (
	ErrWorkerPanic           = fmt.Errorf("worker panic")
	ErrValidation            = fmt.Errorf("invalid scheduled message")
	ErrPermissionDenied      = fmt.Errorf("permission denied")
	ErrCapabilityUnavailable = fmt.Errorf("delivery capability unavailable")
	ErrPersistence           = fmt.Errorf("schedule persistence failed")
	ErrDeserialization       = fmt.Errorf("persisted schedule is malformed")
	ErrDuplicateID           = fmt.Errorf("scheduled message id already exists")
	ErrInvalidConfig         = fmt.Errorf("invalid configuration")
)

// Field names the input a ValidationError refers to.
type Field string

const (
	FieldRecipient   Field = "recipient"
	FieldBody        Field = "body"
	FieldScheduledAt Field = "scheduledAt"
)

// ValidationError reports which field of a create request was rejected.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e ValidationError) Unwrap() error { return ErrValidation }

// Permission names the gate that refused a create.
type Permission string

const (
	PermissionSend        Permission = "sendCapability"
	PermissionExactTiming Permission = "exactTiming"
)

type PermissionDeniedError struct {
	Which Permission
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPermissionDenied, e.Which)
}

func (e PermissionDeniedError) Unwrap() error { return ErrPermissionDenied }
