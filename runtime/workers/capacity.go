package workers

import (
	"context"
	"log/slog"
	"sms-scheduler/contract"
	"time"
)

var _ contract.Worker = (*CapacityWorker)(nil)

// QueueProbe samples the length and capacity of a buffered queue.
type QueueProbe struct {
	Name  string
	Probe func() (length, capacity int)
}

// CapacityWorker periodically samples queue fill levels and warns when a queue has
// fewer than lowThreshold free slots. Sampling len and cap never blocks the owners.
type CapacityWorker struct {
	log          *slog.Logger
	probes       []QueueProbe
	lowThreshold int
	interval     time.Duration
}

func NewCapacityWorker(log *slog.Logger, probes []QueueProbe, lowThreshold int, interval time.Duration) *CapacityWorker {
	return &CapacityWorker{log: log, probes: probes, lowThreshold: lowThreshold, interval: interval}
}

func (w *CapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *CapacityWorker) sample() {
	for _, p := range w.probes {
		length, capacity := p.Probe()
		if capacity-length < w.lowThreshold {
			w.log.Warn("Queue running low on capacity", "queue", p.Name, "length", length, "capacity", capacity)
			continue
		}
		w.log.Debug("Queue capacity", "queue", p.Name, "length", length, "capacity", capacity)
	}
}
