package workers

import (
	"context"
	"log/slog"
	"os"
	"sms-scheduler/contract"
	"time"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker periodically logs the schedule counts along with the process footprint.
type HeartbeatWorker struct {
	log      *slog.Logger
	stats    contract.StatsProvider
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, stats contract.StatsProvider, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, stats: stats, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats, err := w.stats.Stats(ctx)
			if err != nil {
				w.log.Warn("Failed to collect schedule stats", "error", err)
				continue
			}
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "error", err)
				continue
			}
			w.log.Info("Heartbeat",
				"pending", stats.Pending,
				"sent", stats.Sent,
				"failed", stats.Failed,
				"rss_bytes", rss,
				"cpu_percent", cpu,
			)
		}
	}
}

func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
