// Package permission holds gates whose answers come from configuration
// rather than from an interactive platform prompt.
package permission

import (
	"context"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
)

var (
	_ contract.PermissionGate = StaticGate{}
	_ contract.Prompter       = StaticPrompter{}
)

// StaticGate grants or refuses the send capability once and for all.
type StaticGate struct {
	Granted bool
}

func (g StaticGate) EnsureSendCapability(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return g.Granted, nil
}

// StaticPrompter always gives the same answer when exact timing is missing.
type StaticPrompter struct {
	Choice domain.ExactTimingChoice
}

func (p StaticPrompter) ChooseExactTiming(_ context.Context) domain.ExactTimingChoice {
	return p.Choice
}
