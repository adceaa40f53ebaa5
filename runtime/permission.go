package runtime

import (
	"context"
	"errors"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"
)

// DefaultExactTimingVersion is the first platform version that requires the
// exact timing capability before scheduling.
const DefaultExactTimingVersion = 33

// ExactTimingPolicy decides whether exact timing must be granted on this platform.
// A zero RequiredFromVersion disables the check.
type ExactTimingPolicy struct {
	PlatformVersion     int
	RequiredFromVersion int
}

func (p ExactTimingPolicy) Applies() bool {
	return p.RequiredFromVersion > 0 && p.PlatformVersion >= p.RequiredFromVersion
}

// ensurePermissions runs the two-stage gate. Basic send capability comes first
// and a refusal there stops before exact timing is looked at. When exact timing is
// missing the user may open the settings surface, but the create is abandoned
// either way and has to be initiated again.
func (c *Controller) ensurePermissions(ctx context.Context) error {
	if c.gate == nil {
		return apperr.PermissionDeniedError{Which: apperr.PermissionSend}
	}
	granted, err := c.gate.EnsureSendCapability(ctx)
	if err != nil {
		c.log.Warn("Send capability request failed", "error", err)
		return apperr.PermissionDeniedError{Which: apperr.PermissionSend}
	}
	if !granted {
		return apperr.PermissionDeniedError{Which: apperr.PermissionSend}
	}

	if !c.policy.Applies() {
		return nil
	}
	if c.capability == nil {
		return apperr.ErrCapabilityUnavailable
	}
	exact, err := c.capability.CanScheduleExactTiming(ctx)
	if errors.Is(err, apperr.ErrCapabilityUnavailable) {
		return err
	}
	if err != nil {
		c.log.Warn("Exact timing check failed", "error", err)
		return apperr.PermissionDeniedError{Which: apperr.PermissionExactTiming}
	}
	if exact {
		return nil
	}

	if c.prompter != nil && c.prompter.ChooseExactTiming(ctx) == domain.ExactTimingOpenSettings {
		if err = c.capability.OpenExactTimingSettings(ctx); err != nil {
			c.log.Warn("Failed to open exact timing settings", "error", err)
		}
	}
	return apperr.PermissionDeniedError{Which: apperr.PermissionExactTiming}
}
