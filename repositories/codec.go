package repositories

import (
	"fmt"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
)

// ScheduledAtLayout is ISO-8601 with millisecond precision, always written in UTC.
const ScheduledAtLayout = "2006-01-02T15:04:05.000Z07:00"

// DiskMessage is the persisted shape of a scheduled message.
type DiskMessage struct {
	ID          string `json:"id"`
	Recipient   string `json:"recipient"`
	Body        string `json:"body"`
	ScheduledAt string `json:"scheduledAt"`
	Status      string `json:"status"`
}

// Encode serializes the whole collection as a JSON array.
func Encode(messages []domain.ScheduledMessage) (string, error) {
	diskMessages := lo.Map(messages, func(item domain.ScheduledMessage, _ int) DiskMessage {
		return fromScheduledMessage(item)
	})
	if diskMessages == nil {
		diskMessages = []DiskMessage{}
	}
	bytes, err := json.Marshal(diskMessages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return string(bytes), nil
}

// Decode rebuilds the collection from a blob written by Encode.
// Any malformed record rejects the whole blob.
func Decode(blob string) ([]domain.ScheduledMessage, error) {
	var diskMessages []DiskMessage
	if err := json.Unmarshal([]byte(blob), &diskMessages); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrDeserialization, err)
	}
	seen := make(map[string]struct{}, len(diskMessages))
	messages := make([]domain.ScheduledMessage, 0, len(diskMessages))
	for i, dm := range diskMessages {
		message, err := toScheduledMessage(dm)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", apperr.ErrDeserialization, i, err)
		}
		if _, ok := seen[message.ID]; ok {
			return nil, fmt.Errorf("%w: record %d: duplicate id %q", apperr.ErrDeserialization, i, message.ID)
		}
		seen[message.ID] = struct{}{}
		messages = append(messages, message)
	}
	return messages, nil
}

func fromScheduledMessage(message domain.ScheduledMessage) DiskMessage {
	return DiskMessage{
		ID:          message.ID,
		Recipient:   message.Recipient,
		Body:        message.Body,
		ScheduledAt: message.ScheduledAt.UTC().Format(ScheduledAtLayout),
		Status:      string(message.Status),
	}
}

func toScheduledMessage(dm DiskMessage) (domain.ScheduledMessage, error) {
	if dm.ID == "" {
		return domain.ScheduledMessage{}, fmt.Errorf("missing id")
	}
	status := domain.Status(dm.Status)
	if !status.Valid() {
		return domain.ScheduledMessage{}, fmt.Errorf("unknown status %q", dm.Status)
	}
	at, err := time.Parse(time.RFC3339Nano, dm.ScheduledAt)
	if err != nil {
		return domain.ScheduledMessage{}, err
	}
	return domain.ScheduledMessage{
		ID:          dm.ID,
		Recipient:   dm.Recipient,
		Body:        dm.Body,
		ScheduledAt: at.UTC(),
		Status:      status,
	}, nil
}
