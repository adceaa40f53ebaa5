package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
	"sms-scheduler/infrastructure/delivery"
	"sms-scheduler/infrastructure/permission"
	"sms-scheduler/internal"
	"sms-scheduler/repositories"
	"sms-scheduler/runtime"
	"sms-scheduler/runtime/workers"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/urfave/cli"
)

var version = "dev"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run builds the command tree so that deferred cleanups in each action
// complete before main decides the exit code.
func run(args []string) error {
	envFileFlag := cli.StringSliceFlag{
		Name:  "env-file",
		Usage: "dotenv file(s) to load before reading the environment",
	}
	app := cli.App{
		Name:     "sms-scheduler",
		HelpName: "sms-scheduler",
		Usage:    "Schedule text messages for later delivery",
		Version:  version,
		Commands: []cli.Command{
			{
				Name:   "serve",
				Usage:  "run the scheduler with an interactive console",
				Action: serve,
				Flags: []cli.Flag{
					envFileFlag,
					cli.BoolFlag{
						Name:  "no-console",
						Usage: "only deliver the persisted schedule, do not read commands from stdin",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "check the configuration and exit",
				Action: validateConfig,
				Flags:  []cli.Flag{envFileFlag},
			},
		},
	}
	return app.Run(args)
}

func validateConfig(c *cli.Context) error {
	config, err := internal.LoadConfig(c.StringSlice("env-file")...)
	if err != nil {
		return err
	}
	for _, warning := range config.Warnings() {
		fmt.Fprintf(os.Stdout, "warning: %s\n", warning)
	}
	fmt.Fprintln(os.Stdout, "configuration is valid")
	return nil
}

func serve(c *cli.Context) error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig(c.StringSlice("env-file")...)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	for _, warning := range config.Warnings() {
		log.Warn(warning)
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Schedule, delivery and permissions
	store := repositories.NewScheduleStore(repositories.NewBlobStore(db), config.ScheduleKey, log)
	capability := delivery.NewLocalCapability(log, newTransmitter(config, log), config.DeliveryExactTiming, config.QueueSize)

	interactive := !c.Bool("no-console")
	term := newConsole(bufio.NewScanner(os.Stdin), os.Stdout)
	var prompter contract.Prompter = permission.StaticPrompter{Choice: domain.ExactTimingAbandon}
	if interactive {
		prompter = term
	}

	controller := runtime.NewController(log, store, capability,
		permission.StaticGate{Granted: config.SendPermissionGranted}, prompter,
		runtime.WithExactTimingPolicy(config.ExactTimingPolicy()),
		runtime.WithRearmPending(config.RearmPending),
		runtime.WithQueueSize(config.QueueSize),
	)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		controller,
		capability,
		workers.NewOutcomeWorker(log, capability.Outcomes(), controller),
		workers.NewHeartbeatWorker(log, controller, config.HeartbeatInterval),
		workers.NewCapacityWorker(log, []workers.QueueProbe{
			{Name: "operations", Probe: controller.QueueLength},
			{Name: "delivery_requests", Probe: capability.RequestsLength},
			{Name: "delivery_outcomes", Probe: capability.OutcomesLength},
		}, config.LowCapacityThreshold, config.MetricInterval),
	)
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()
	defer func() {
		sup.Stop()
		<-supDone
		log.Info("Program stopped cleanly")
	}()

	// 6. Restore the persisted schedule
	loaded, err := controller.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	log.Info("Scheduler started", "restored", loaded, "driver", config.DeliveryDriver)

	// 7. Wait for Stop, or for the console to quit
	if !interactive {
		<-ctx.Done()
		log.Info("Shutting down gracefully...")
		return nil
	}
	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- term.Run(ctx, controller)
	}()
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		return nil
	case err = <-consoleDone:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func newTransmitter(config internal.Config, log *slog.Logger) delivery.Transmitter {
	if config.DeliveryDriver == internal.DriverHTTP {
		return delivery.NewHTTPGateway(config.GatewayConfig())
	}
	return delivery.NewLogTransmitter(log)
}
