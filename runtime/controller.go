// Package runtime owns the lifecycle of scheduled messages.
// It serializes every mutation through a single queue and reconciles
// user actions with outcomes reported by the delivery capability.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"
	"sms-scheduler/repositories"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

// Ensure *Controller can be supervised and fed by the outcome worker.
var (
	_ contract.Worker         = (*Controller)(nil)
	_ contract.OutcomeHandler = (*Controller)(nil)
	_ contract.StatsProvider  = (*Controller)(nil)
)

const defaultQueueSize = 64

// Controller is the single owner of the schedule store.
//
// User calls and delivery outcomes are turned into operations executed one by one
// by Run. Handlers run to completion without interleaving, so a cancel racing an
// outcome for the same id is settled by queue order and the idempotent store rules:
// whichever runs second is a no-op. Interactive steps (permission prompts,
// confirmations) happen on the caller's goroutine before anything is queued.
//
// Every public call blocks until Run has executed it, or until ctx is done while
// it is still queued. An operation abandoned by its caller is skipped.
type Controller struct {
	log        *slog.Logger
	store      repositories.IScheduleStore
	capability contract.DeliveryCapability
	gate       contract.PermissionGate
	prompter   contract.Prompter
	policy     ExactTimingPolicy
	rearm      bool
	now        func() time.Time
	newID      func() (string, error)
	operations chan func(context.Context)
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithExactTimingPolicy(policy ExactTimingPolicy) Option {
	return func(c *Controller) { c.policy = policy }
}

// WithRearmPending re-submits pending records to the capability on Restore.
func WithRearmPending(rearm bool) Option {
	return func(c *Controller) { c.rearm = rearm }
}

func WithQueueSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.operations = make(chan func(context.Context), size)
		}
	}
}

func NewController(
	log *slog.Logger,
	store repositories.IScheduleStore,
	capability contract.DeliveryCapability,
	gate contract.PermissionGate,
	prompter contract.Prompter,
	opts ...Option,
) *Controller {
	c := &Controller{
		log:        log,
		store:      store,
		capability: capability,
		gate:       gate,
		prompter:   prompter,
		now:        time.Now,
		newID:      newMessageID,
		operations: make(chan func(context.Context), defaultQueueSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes queued operations until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("Lifecycle controller started")
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("Context done, stopping lifecycle controller")
			return nil
		case op := <-c.operations:
			op(ctx)
		}
	}
}

const (
	opQueued int32 = iota
	opStarted
	opAbandoned
)

// submit queues fn and waits for it to complete.
// A caller giving up before fn started abandons it. Once started, fn runs with the
// caller's values but is only cancelled when Run stops, and the caller waits for it.
func (c *Controller) submit(ctx context.Context, fn func(ctx context.Context)) error {
	var state atomic.Int32
	done := make(chan struct{})
	op := func(runCtx context.Context) {
		defer close(done)
		if !state.CompareAndSwap(opQueued, opStarted) {
			return
		}
		opCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(runCtx, cancel)
		defer stop()
		fn(opCtx)
	}
	select {
	case c.operations <- op:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(opQueued, opAbandoned) {
			return ctx.Err()
		}
		<-done
		return nil
	}
}

// Create validates the command, checks permissions, schedules the delivery and
// records the message as pending. Nothing is scheduled or stored unless every
// precondition holds, and the record is only stored once Schedule succeeded.
func (c *Controller) Create(ctx context.Context, cmd domain.CreateMessageCommand) (domain.ScheduledMessage, error) {
	if err := c.validateCommand(cmd); err != nil {
		return domain.ScheduledMessage{}, err
	}
	if err := c.ensurePermissions(ctx); err != nil {
		return domain.ScheduledMessage{}, err
	}
	if c.capability == nil {
		return domain.ScheduledMessage{}, apperr.ErrCapabilityUnavailable
	}

	var created domain.ScheduledMessage
	var createErr error
	if err := c.submit(ctx, func(ctx context.Context) {
		created, createErr = c.create(ctx, cmd)
	}); err != nil {
		return domain.ScheduledMessage{}, err
	}
	return created, createErr
}

func (c *Controller) create(ctx context.Context, cmd domain.CreateMessageCommand) (domain.ScheduledMessage, error) {
	id, err := c.newID()
	if err != nil {
		return domain.ScheduledMessage{}, fmt.Errorf("allocate message id: %w", err)
	}
	if _, exists := c.store.Get(id); exists {
		return domain.ScheduledMessage{}, fmt.Errorf("%w: %s", apperr.ErrDuplicateID, id)
	}

	message := domain.ScheduledMessage{
		ID:          id,
		Recipient:   cmd.Recipient,
		Body:        cmd.Body,
		ScheduledAt: domain.TruncateToMillis(cmd.ScheduledAt),
		Status:      domain.StatusPending,
	}
	if err = c.capability.Schedule(ctx, message.ID, message.Recipient, message.Body, message.EpochMillis()); err != nil {
		return domain.ScheduledMessage{}, fmt.Errorf("schedule delivery %s: %w", message.ID, err)
	}
	if err = c.store.Insert(ctx, message); err != nil {
		if cancelErr := c.capability.Cancel(ctx, message.ID); cancelErr != nil {
			c.log.Warn("Failed to withdraw delivery after rejected insert", "id", message.ID, "error", cancelErr)
		}
		return domain.ScheduledMessage{}, err
	}
	c.log.Info("Message scheduled", "id", message.ID,
		"scheduled_at", message.ScheduledAt.Format(time.RFC3339))
	return message, nil
}

// ApplyOutcome moves a pending record to the reported terminal status.
// Malformed outcomes, unknown ids and terminal records are ignored.
func (c *Controller) ApplyOutcome(ctx context.Context, outcome domain.DeliveryOutcome) {
	if !outcome.Valid() {
		c.log.Debug("Dropping malformed delivery outcome", "id", outcome.ID, "status", outcome.Outcome)
		return
	}
	err := c.submit(ctx, func(ctx context.Context) {
		if c.store.UpdateStatus(ctx, outcome.ID, outcome.Outcome) {
			c.log.Info("Delivery outcome applied", "id", outcome.ID, "status", outcome.Outcome)
			return
		}
		c.log.Debug("Delivery outcome ignored", "id", outcome.ID, "status", outcome.Outcome)
	})
	if err != nil {
		c.log.Warn("Delivery outcome not applied", "id", outcome.ID, "error", err)
	}
}

// Cancel removes a record once confirm agreed, whatever its status.
// The delivery is withdrawn best-effort first: a failure there does not keep the
// record, except when the capability cannot cancel at all.
// It reports whether a record was removed; cancelling an absent id is not an error.
func (c *Controller) Cancel(ctx context.Context, id string, confirm contract.Confirmation) (bool, error) {
	if confirm == nil || !confirm(ctx, id) {
		return false, nil
	}
	if c.capability == nil {
		return false, apperr.ErrCapabilityUnavailable
	}

	var removed bool
	var cancelErr error
	if err := c.submit(ctx, func(ctx context.Context) {
		removed, cancelErr = c.cancel(ctx, id)
	}); err != nil {
		return false, err
	}
	return removed, cancelErr
}

func (c *Controller) cancel(ctx context.Context, id string) (bool, error) {
	message, ok := c.store.Get(id)
	if !ok {
		return false, nil
	}
	if err := c.withdraw(ctx, message); err != nil {
		return false, err
	}
	removed := c.store.Remove(ctx, id)
	c.log.Info("Scheduled message cancelled", "id", id, "status", message.Status)
	return removed, nil
}

// Clear removes every record once confirm agreed and reports how many were removed.
func (c *Controller) Clear(ctx context.Context, confirm contract.Confirmation) (int, error) {
	if confirm == nil || !confirm(ctx, "") {
		return 0, nil
	}
	if c.capability == nil {
		return 0, apperr.ErrCapabilityUnavailable
	}

	var cleared int
	var clearErr error
	if err := c.submit(ctx, func(ctx context.Context) {
		messages := c.store.List()
		for i, message := range messages {
			if err := c.withdraw(ctx, message); err != nil {
				// Records already withdrawn would never get an outcome.
				for _, withdrawn := range messages[:i] {
					c.store.Remove(ctx, withdrawn.ID)
				}
				cleared, clearErr = i, err
				return
			}
		}
		c.store.Clear(ctx)
		cleared = len(messages)
		c.log.Info(fmt.Sprintf("%d scheduled messages cleared", cleared))
	}); err != nil {
		return 0, err
	}
	return cleared, clearErr
}

// withdraw asks the capability to drop a pending delivery.
// Only an unavailable capability is reported, other failures are logged.
func (c *Controller) withdraw(ctx context.Context, message domain.ScheduledMessage) error {
	if message.Status.Terminal() {
		return nil
	}
	err := c.capability.Cancel(ctx, message.ID)
	if errors.Is(err, apperr.ErrCapabilityUnavailable) {
		return err
	}
	if err != nil {
		c.log.Warn("Delivery cancellation uncertain, removing record anyway", "id", message.ID, "error", err)
	}
	return nil
}

// Restore loads the persisted schedule and, if configured, re-arms pending
// deliveries. Statuses are left untouched: only outcomes change them.
// Each re-arm is its own operation so outcomes and user calls interleave with it.
func (c *Controller) Restore(ctx context.Context) (int, error) {
	var messages []domain.ScheduledMessage
	if err := c.submit(ctx, func(ctx context.Context) {
		messages = c.store.Load(ctx)
	}); err != nil {
		return 0, err
	}
	if !c.rearm || c.capability == nil {
		return len(messages), nil
	}

	pending := lo.Filter(messages, func(item domain.ScheduledMessage, _ int) bool {
		return item.Status == domain.StatusPending
	})
	rearmed := 0
	for _, message := range pending {
		if err := c.submit(ctx, func(ctx context.Context) {
			if c.rearmOne(ctx, message.ID) {
				rearmed++
			}
		}); err != nil {
			return len(messages), err
		}
	}
	if rearmed > 0 {
		c.log.Info(fmt.Sprintf("%d pending deliveries re-armed", rearmed))
	}
	return len(messages), nil
}

// rearmOne schedules a record again if it is still pending.
func (c *Controller) rearmOne(ctx context.Context, id string) bool {
	message, ok := c.store.Get(id)
	if !ok || message.Status != domain.StatusPending {
		return false
	}
	err := c.capability.Schedule(ctx, message.ID, message.Recipient, message.Body, message.EpochMillis())
	if err != nil {
		c.log.Warn("Failed to re-arm pending delivery", "id", message.ID, "error", err)
		return false
	}
	return true
}

// QueueLength reports how many operations wait to run, and the queue capacity.
func (c *Controller) QueueLength() (int, int) {
	return len(c.operations), cap(c.operations)
}

func (c *Controller) List(ctx context.Context) ([]domain.ScheduledMessage, error) {
	var messages []domain.ScheduledMessage
	err := c.submit(ctx, func(ctx context.Context) {
		messages = c.store.List()
	})
	return messages, err
}

func (c *Controller) Get(ctx context.Context, id string) (domain.ScheduledMessage, bool, error) {
	var message domain.ScheduledMessage
	var found bool
	err := c.submit(ctx, func(ctx context.Context) {
		message, found = c.store.Get(id)
	})
	return message, found, err
}

func (c *Controller) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := c.submit(ctx, func(ctx context.Context) {
		stats = c.store.Stats()
	})
	return stats, err
}
