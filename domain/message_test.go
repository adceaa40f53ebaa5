package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to sent", StatusPending, StatusSent, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"sent is final", StatusSent, StatusFailed, false},
		{"failed is final", StatusFailed, StatusSent, false},
		{"unknown target", StatusPending, Status("delivered"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	req := require.New(t)
	req.True(StatusPending.Valid())
	req.True(StatusSent.Valid())
	req.True(StatusFailed.Valid())
	req.False(Status("").Valid())
	req.False(Status("SENT").Valid())
}

func TestTruncateToMillis_DropsSubMillisecondsAndNormalizesToUTC(t *testing.T) {
	req := require.New(t)
	paris := time.FixedZone("CET", 3600)
	at := time.Date(2030, 5, 1, 10, 0, 0, 123_456_789, paris)

	truncated := TruncateToMillis(at)

	req.Equal(time.UTC, truncated.Location())
	req.Equal(123_000_000, truncated.Nanosecond())
	req.True(truncated.Equal(at.Truncate(time.Millisecond)))
	req.Equal(at.UnixMilli(), ScheduledMessage{ScheduledAt: truncated}.EpochMillis())
}

func TestDeliveryOutcome_Valid(t *testing.T) {
	req := require.New(t)
	req.True(DeliveryOutcome{ID: "m1", Outcome: StatusSent}.Valid())
	req.True(DeliveryOutcome{ID: "m1", Outcome: StatusFailed}.Valid())
	req.False(DeliveryOutcome{ID: "", Outcome: StatusSent}.Valid())
	req.False(DeliveryOutcome{ID: "m1", Outcome: StatusPending}.Valid())
	req.False(DeliveryOutcome{ID: "m1", Outcome: Status("bogus")}.Valid())
}

func TestStats_Total(t *testing.T) {
	require.Equal(t, 6, Stats{Pending: 1, Sent: 2, Failed: 3}.Total())
}
