//go:generate go run go.uber.org/mock/mockgen -source=schedule.go -destination=../mocks/mock_schedule_store.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"

	"github.com/samber/lo"
)

const DefaultScheduleKey = "schedule:messages"

type IScheduleStore interface {
	Load(ctx context.Context) []domain.ScheduledMessage
	Insert(ctx context.Context, message domain.ScheduledMessage) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) bool
	Remove(ctx context.Context, id string) bool
	Clear(ctx context.Context)
	Get(id string) (domain.ScheduledMessage, bool)
	List() []domain.ScheduledMessage
	Stats() domain.Stats
}

// ScheduleStore owns the ordered collection of scheduled messages and mirrors it
// into a blob store after every mutation. The blob is a passive copy: Load replaces
// memory with it, every write re-serializes the whole collection.
//
// ScheduleStore is not safe for concurrent use. Its owner serializes access.
type ScheduleStore struct {
	blobs    contract.IBlobStore
	key      string
	log      *slog.Logger
	messages []domain.ScheduledMessage
}

func NewScheduleStore(blobs contract.IBlobStore, key string, log *slog.Logger) *ScheduleStore {
	if key == "" {
		key = DefaultScheduleKey
	}
	return &ScheduleStore{blobs: blobs, key: key, log: log}
}

// Load replaces the in-memory collection with the persisted one.
// A missing blob yields an empty collection. A read failure or a corrupt blob is
// logged and also yields an empty collection: startup never blocks on cache data.
func (s *ScheduleStore) Load(ctx context.Context) []domain.ScheduledMessage {
	s.messages = nil
	blob, found, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		s.log.Error("Failed to read scheduled messages",
			"key", s.key, "error", fmt.Errorf("%w: %v", apperr.ErrPersistence, err))
		return s.List()
	}
	if !found {
		s.log.Debug("No scheduled messages persisted yet", "key", s.key)
		return s.List()
	}
	messages, err := Decode(blob)
	if err != nil {
		s.log.Error("Discarding malformed scheduled messages", "key", s.key, "error", err)
		return s.List()
	}
	s.messages = messages
	s.log.Info(fmt.Sprintf("%d scheduled messages loaded", len(messages)))
	return s.List()
}

// Insert appends a new record at the end of the collection.
func (s *ScheduleStore) Insert(ctx context.Context, message domain.ScheduledMessage) error {
	if _, ok := s.indexOf(message.ID); ok {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicateID, message.ID)
	}
	s.messages = append(s.messages, message)
	s.persist(ctx)
	return nil
}

// UpdateStatus applies a terminal status to a pending record.
// Unknown ids, terminal records and non-terminal targets are ignored.
func (s *ScheduleStore) UpdateStatus(ctx context.Context, id string, status domain.Status) bool {
	i, ok := s.indexOf(id)
	if !ok {
		return false
	}
	if !s.messages[i].Status.CanTransition(status) {
		return false
	}
	s.messages[i].Status = status
	s.persist(ctx)
	return true
}

// Remove deletes a record whatever its status. Removing an absent id changes nothing.
func (s *ScheduleStore) Remove(ctx context.Context, id string) bool {
	if _, ok := s.indexOf(id); !ok {
		return false
	}
	s.messages = lo.Filter(s.messages, func(item domain.ScheduledMessage, _ int) bool {
		return item.ID != id
	})
	s.persist(ctx)
	return true
}

func (s *ScheduleStore) Clear(ctx context.Context) {
	s.messages = nil
	s.persist(ctx)
}

func (s *ScheduleStore) Get(id string) (domain.ScheduledMessage, bool) {
	i, ok := s.indexOf(id)
	if !ok {
		return domain.ScheduledMessage{}, false
	}
	return s.messages[i], true
}

// List returns a copy in insertion order.
func (s *ScheduleStore) List() []domain.ScheduledMessage {
	res := make([]domain.ScheduledMessage, len(s.messages))
	copy(res, s.messages)
	return res
}

func (s *ScheduleStore) Stats() domain.Stats {
	counts := lo.CountValuesBy(s.messages, func(item domain.ScheduledMessage) domain.Status {
		return item.Status
	})
	return domain.Stats{
		Pending: counts[domain.StatusPending],
		Sent:    counts[domain.StatusSent],
		Failed:  counts[domain.StatusFailed],
	}
}

func (s *ScheduleStore) indexOf(id string) (int, bool) {
	_, i, ok := lo.FindIndexOf(s.messages, func(item domain.ScheduledMessage) bool {
		return item.ID == id
	})
	return i, ok
}

// persist writes the full collection. A failed write is logged and the in-memory
// state stays authoritative for the session.
func (s *ScheduleStore) persist(ctx context.Context) {
	blob, err := Encode(s.messages)
	if err != nil {
		s.log.Error("Failed to encode scheduled messages", "error", err)
		return
	}
	if err = s.blobs.Set(ctx, s.key, blob); err != nil {
		s.log.Error("Failed to persist scheduled messages",
			"key", s.key, "error", fmt.Errorf("%w: %v", apperr.ErrPersistence, err))
	}
}
