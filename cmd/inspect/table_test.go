package main

import (
	"bytes"
	"sms-scheduler/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleMessages() []domain.ScheduledMessage {
	at := time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC)
	return []domain.ScheduledMessage{
		{ID: "a", Recipient: "+33600000001", Body: "short", ScheduledAt: at, Status: domain.StatusPending},
		{ID: "b", Recipient: "+33600000002", Body: "this body is definitely longer than thirty characters", ScheduledAt: at, Status: domain.StatusSent},
		{ID: "c", Recipient: "+33600000003", Body: "oops", ScheduledAt: at, Status: domain.StatusFailed},
	}
}

func TestFilterByStatus_EmptyKeepsEverything(t *testing.T) {
	req := require.New(t)
	req.Len(filterByStatus(sampleMessages(), ""), 3)
}

func TestFilterByStatus_KeepsOnlyMatching(t *testing.T) {
	req := require.New(t)
	filtered := filterByStatus(sampleMessages(), "sent")
	req.Len(filtered, 1)
	req.Equal("b", filtered[0].ID)
}

func TestRender_ShowsPreviewAndTotals(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	render(&out, sampleMessages(), false)

	req.Contains(out.String(), "this body is definitely longer...")
	req.NotContains(out.String(), "thirty characters")
	req.Contains(out.String(), "Pending")
	req.Contains(out.String(), "3 messages: 1 pending, 1 sent, 1 failed")
}

func TestStatusLabel_WithoutColoursIsPlain(t *testing.T) {
	req := require.New(t)
	req.Equal("Failed", statusLabel(domain.StatusFailed, false))
	req.Equal("Unknown", statusLabel(domain.Status("bogus"), true))
}
