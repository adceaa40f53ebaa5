package workers

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCapacityWorker_WarnsOnlyForFullQueues(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	full := make(chan int, 4)
	full <- 1
	full <- 2
	full <- 3
	empty := make(chan int, 4)

	worker := NewCapacityWorker(log, []QueueProbe{
		{Name: "operations", Probe: func() (int, int) { return len(full), cap(full) }},
		{Name: "requests", Probe: func() (int, int) { return len(empty), cap(empty) }},
	}, 2, time.Hour)

	worker.sample()

	req.Contains(out.String(), "queue=operations")
	req.NotContains(out.String(), "queue=requests")
}

func TestCapacityWorker_StopsOnContextDone(t *testing.T) {
	req := require.New(t)
	worker := NewCapacityWorker(slog.Default(), nil, 1, 5*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	req.NoError(worker.Run(ctx))
}
