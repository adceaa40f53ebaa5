package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sms-scheduler/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	ScheduleKey    string `envconfig:"SCHEDULE_KEY" default:"schedule:messages"`
	// INSPECT_COLOURS colours the status column
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	status := flag.String("status", "", "only show messages with this status (pending, sent, failed)")
	flag.Parse()

	// Read-only with BypassLockGuard so the running scheduler keeps its lock
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	blob, found, err := repositories.NewBlobStore(db).Get(context.Background(), config.ScheduleKey)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(os.Stdout, "no schedule stored under", config.ScheduleKey)
		return nil
	}
	messages, err := repositories.Decode(blob)
	if err != nil {
		return err
	}
	render(os.Stdout, filterByStatus(messages, *status), config.Colours)
	return nil
}
