package domain

import (
	"time"
)

// CreateMessageCommand carries the user's intent to queue a message.
type CreateMessageCommand struct {
	Recipient   string    `validate:"required"`
	Body        string    `validate:"required"`
	ScheduledAt time.Time `validate:"required"`
}

// ExactTimingChoice is the answer given when exact timing is not granted.
type ExactTimingChoice int

const (
	ExactTimingAbandon ExactTimingChoice = iota
	ExactTimingOpenSettings
)
