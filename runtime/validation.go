package runtime

import (
	"errors"
	"fmt"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

var fieldsByName = map[string]apperr.Field{
	"Recipient":   apperr.FieldRecipient,
	"Body":        apperr.FieldBody,
	"ScheduledAt": apperr.FieldScheduledAt,
}

// validateCommand reports the first rejected field of cmd.
// The target time, truncated as it will be stored, must be strictly after now.
func (c *Controller) validateCommand(cmd domain.CreateMessageCommand) error {
	if err := validate.Struct(cmd); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return apperr.ValidationError{Field: fieldsByName[fe.Field()], Reason: reason(fe)}
		}
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if !domain.TruncateToMillis(cmd.ScheduledAt).After(c.now()) {
		return apperr.ValidationError{Field: apperr.FieldScheduledAt, Reason: "must be in the future"}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}

// newMessageID returns a UUIDv7: a millisecond timestamp prefix followed by random
// bits, so rapid successive creates never depend on clock resolution.
func newMessageID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
