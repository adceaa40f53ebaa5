// Package delivery provides an in-process delivery capability: a timer loop that
// hands due messages to a Transmitter and reports each result as an outcome.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"
	"time"
)

// maxSleepCap bounds every wait so wall-clock jumps (NTP, suspend) are noticed.
const maxSleepCap = 60 * time.Second

var (
	_ contract.DeliveryCapability = (*LocalCapability)(nil)
	_ contract.Worker             = (*LocalCapability)(nil)
)

// Delivery is what a Transmitter sends.
type Delivery struct {
	ID          string
	Recipient   string
	Body        string
	ScheduledAt time.Time
}

type Transmitter interface {
	Transmit(ctx context.Context, d Delivery) error
}

// request is a schedule, or a withdrawal when remove is set.
// Both travel on one channel so Run applies them in call order.
type request struct {
	remove   bool
	delivery scheduledDelivery
}

// LocalCapability keeps due deliveries in a min-heap and transmits them from Run.
// Schedule and Cancel only enqueue requests; Run must be running for them to take effect.
// Transmissions run one at a time on the Run goroutine.
type LocalCapability struct {
	log         *slog.Logger
	transmitter Transmitter
	exactTiming bool
	requests    chan request
	outcomes    chan domain.DeliveryOutcome
	pending     deliveryHeap
	outbox      []domain.DeliveryOutcome
	now         func() time.Time
}

func NewLocalCapability(log *slog.Logger, transmitter Transmitter, exactTiming bool, bufferSize int) *LocalCapability {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &LocalCapability{
		log:         log,
		transmitter: transmitter,
		exactTiming: exactTiming,
		requests:    make(chan request, bufferSize),
		outcomes:    make(chan domain.DeliveryOutcome, bufferSize),
		now:         time.Now,
	}
}

func (c *LocalCapability) Schedule(ctx context.Context, id, recipient, body string, atEpochMillis int64) error {
	if c.transmitter == nil {
		return fmt.Errorf("%w: no transmitter configured", apperr.ErrCapabilityUnavailable)
	}
	return c.enqueue(ctx, request{delivery: scheduledDelivery{
		ID:        id,
		Recipient: recipient,
		Body:      body,
		TriggerAt: time.UnixMilli(atEpochMillis),
	}})
}

// Cancel withdraws a delivery that has not fired yet. Unknown ids are ignored.
func (c *LocalCapability) Cancel(ctx context.Context, id string) error {
	return c.enqueue(ctx, request{remove: true, delivery: scheduledDelivery{ID: id}})
}

func (c *LocalCapability) enqueue(ctx context.Context, r request) error {
	select {
	case c.requests <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *LocalCapability) CanScheduleExactTiming(_ context.Context) (bool, error) {
	return c.exactTiming, nil
}

// OpenExactTimingSettings has no settings screen to open on a server; it tells the operator where the switch is.
func (c *LocalCapability) OpenExactTimingSettings(_ context.Context) error {
	c.log.Info("Exact timing is disabled, set DELIVERY_EXACT_TIMING=true and restart to grant it")
	return nil
}

func (c *LocalCapability) Outcomes() <-chan domain.DeliveryOutcome {
	return c.outcomes
}

func (c *LocalCapability) RequestsLength() (int, int) {
	return len(c.requests), cap(c.requests)
}

func (c *LocalCapability) OutcomesLength() (int, int) {
	return len(c.outcomes), cap(c.outcomes)
}

// Run sleeps until the earliest delivery is due, transmits every due delivery and
// emits its outcome. The heap and the outbox survive a supervisor restart of Run.
// Outcomes wait in an outbox so Run keeps accepting requests while nobody reads them.
func (c *LocalCapability) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if c.pending.Len() == 0 {
			return nil
		}
		dur := c.pending[0].TriggerAt.Sub(c.now())
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()
	for {
		var outCh chan domain.DeliveryOutcome
		var next domain.DeliveryOutcome
		if len(c.outbox) > 0 {
			outCh = c.outcomes
			next = c.outbox[0]
		}

		select {
		case <-ctx.Done():
			if len(c.outbox) > 0 {
				c.log.Warn("Stopping with unreported delivery outcomes", "count", len(c.outbox))
			}
			return nil

		case r := <-c.requests:
			c.apply(r)
			timerCh = resetTimer()

		case outCh <- next:
			c.outbox = c.outbox[1:]

		case <-timerCh:
			now := c.now()
			for c.pending.Len() > 0 && !c.pending[0].TriggerAt.After(now) {
				c.outbox = append(c.outbox, c.fire(ctx, c.pending.pop()))
			}
			timerCh = resetTimer()
		}
	}
}

func (c *LocalCapability) apply(r request) {
	if !r.remove {
		c.pending.upsert(r.delivery)
		return
	}
	if c.pending.remove(r.delivery.ID) {
		c.log.Debug("Delivery withdrawn", "id", r.delivery.ID)
	} else {
		c.log.Debug("Delivery not found, nothing to withdraw", "id", r.delivery.ID)
	}
}

// fire transmits one delivery and returns its outcome.
func (c *LocalCapability) fire(ctx context.Context, d scheduledDelivery) domain.DeliveryOutcome {
	err := c.transmitter.Transmit(ctx, Delivery{
		ID:          d.ID,
		Recipient:   d.Recipient,
		Body:        d.Body,
		ScheduledAt: d.TriggerAt,
	})
	if err != nil {
		c.log.Error("Failed to transmit message", "id", d.ID, "error", err)
		return domain.DeliveryOutcome{ID: d.ID, Outcome: domain.StatusFailed}
	}
	c.log.Debug("Message transmitted", "id", d.ID)
	return domain.DeliveryOutcome{ID: d.ID, Outcome: domain.StatusSent}
}
