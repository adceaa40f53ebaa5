// Package domain contains core concepts of the message scheduler.
// This file defines the scheduled message and its status rules.
// A message only ever moves from pending to one terminal status.
package domain

import (
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

// CanTransition enforces pending -> sent | failed.
func (s Status) CanTransition(to Status) bool {
	return s == StatusPending && to.Terminal()
}

// ScheduledMessage is a message queued for delivery at ScheduledAt.
// ID and ScheduledAt never change after creation.
type ScheduledMessage struct {
	ID          string
	Recipient   string
	Body        string
	ScheduledAt time.Time
	Status      Status
}

// EpochMillis is the trigger time handed to the delivery capability.
func (m ScheduledMessage) EpochMillis() int64 {
	return m.ScheduledAt.UnixMilli()
}

// TruncateToMillis drops sub-millisecond precision so a time survives persistence unchanged.
func TruncateToMillis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}
