package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sms-scheduler/contract"
	"sms-scheduler/domain"
	apperr "sms-scheduler/errors"
	"sms-scheduler/runtime"
	"strings"
	"time"
)

const consoleHelp = `commands:
  create <recipient> <when> <body...>   when is RFC3339, "2006-01-02T15:04" (local) or +<duration>
  list                                  show every scheduled message
  get <id>                              show one message
  cancel <id>                           cancel and remove a message
  clear                                 cancel and remove every message
  stats                                 count messages per status
  quit                                  stop the scheduler`

// scheduler is the part of the lifecycle controller the console drives.
type scheduler interface {
	Create(ctx context.Context, cmd domain.CreateMessageCommand) (domain.ScheduledMessage, error)
	Cancel(ctx context.Context, id string, confirm contract.Confirmation) (bool, error)
	Clear(ctx context.Context, confirm contract.Confirmation) (int, error)
	List(ctx context.Context) ([]domain.ScheduledMessage, error)
	Get(ctx context.Context, id string) (domain.ScheduledMessage, bool, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

var (
	_ scheduler         = (*runtime.Controller)(nil)
	_ contract.Prompter = (*console)(nil)
)

// console reads commands line by line. Prompts (confirmations and the exact timing
// choice) read the next line from the same input, so it must only be used from
// the goroutine running Run.
type console struct {
	in  *bufio.Scanner
	out io.Writer
	loc *time.Location
	now func() time.Time
}

func newConsole(in *bufio.Scanner, out io.Writer) *console {
	return &console{in: in, out: out, loc: time.Local, now: time.Now}
}

// Run returns nil on quit or end of input.
func (c *console) Run(ctx context.Context, s scheduler) error {
	fmt.Fprintln(c.out, consoleHelp)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		if quit := c.execute(ctx, s, line); quit {
			return nil
		}
	}
}

func (c *console) execute(ctx context.Context, s scheduler, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
	case "create":
		cmd, err := c.parseCreate(fields[1:])
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		message, err := s.Create(ctx, cmd)
		if err != nil {
			fmt.Fprintf(c.out, "error: %s\n", describeError(err))
			return false
		}
		fmt.Fprintf(c.out, "scheduled %s for %s\n", message.ID, domain.FormatScheduledAt(message.ScheduledAt, c.loc))
	case "list":
		messages, err := s.List(ctx)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		if len(messages) == 0 {
			fmt.Fprintln(c.out, "no scheduled messages")
		}
		for _, message := range messages {
			c.printMessage(message)
		}
	case "get":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: get <id>")
			return false
		}
		message, found, err := s.Get(ctx, fields[1])
		switch {
		case err != nil:
			fmt.Fprintf(c.out, "error: %v\n", err)
		case !found:
			fmt.Fprintf(c.out, "no message %s\n", fields[1])
		default:
			c.printMessage(message)
			fmt.Fprintf(c.out, "  %s\n", message.Body)
		}
	case "cancel":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: cancel <id>")
			return false
		}
		removed, err := s.Cancel(ctx, fields[1], c.Confirm)
		switch {
		case err != nil:
			fmt.Fprintf(c.out, "error: %s\n", describeError(err))
		case removed:
			fmt.Fprintf(c.out, "cancelled %s\n", fields[1])
		default:
			fmt.Fprintln(c.out, "nothing cancelled")
		}
	case "clear":
		cleared, err := s.Clear(ctx, c.Confirm)
		if err != nil {
			fmt.Fprintf(c.out, "error: %s\n", describeError(err))
			return false
		}
		fmt.Fprintf(c.out, "%d messages cleared\n", cleared)
	case "stats":
		stats, err := s.Stats(ctx)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(c.out, "pending=%d sent=%d failed=%d total=%d\n",
			stats.Pending, stats.Sent, stats.Failed, stats.Total())
	default:
		fmt.Fprintf(c.out, "unknown command %q, type help\n", fields[0])
	}
	return false
}

func (c *console) parseCreate(args []string) (domain.CreateMessageCommand, error) {
	if len(args) < 3 {
		return domain.CreateMessageCommand{}, errors.New("usage: create <recipient> <when> <body...>")
	}
	at, err := c.parseWhen(args[1])
	if err != nil {
		return domain.CreateMessageCommand{}, err
	}
	return domain.CreateMessageCommand{
		Recipient:   args[0],
		Body:        strings.Join(args[2:], " "),
		ScheduledAt: at,
	}, nil
}

func (c *console) parseWhen(value string) (time.Time, error) {
	if strings.HasPrefix(value, "+") {
		d, err := time.ParseDuration(value[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid duration %q: %w", value, err)
		}
		return c.now().Add(d), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", value, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", value)
	}
	return t, nil
}

func (c *console) printMessage(message domain.ScheduledMessage) {
	fmt.Fprintf(c.out, "%s  %-7s  %s  %s  %s\n",
		message.ID,
		message.Status.Label(),
		domain.FormatScheduledAt(message.ScheduledAt, c.loc),
		message.Recipient,
		domain.Preview(message.Body, domain.PreviewLength),
	)
}

// Confirm asks before a cancel, or before a clear when id is empty.
func (c *console) Confirm(_ context.Context, id string) bool {
	if id == "" {
		return c.ask("Cancel and remove every scheduled message? [y/N] ")
	}
	return c.ask(fmt.Sprintf("Cancel scheduled message %s? [y/N] ", id))
}

func (c *console) ChooseExactTiming(_ context.Context) domain.ExactTimingChoice {
	if c.ask("Exact timing is not granted. Open settings? [y/N] ") {
		return domain.ExactTimingOpenSettings
	}
	return domain.ExactTimingAbandon
}

func (c *console) ask(question string) bool {
	fmt.Fprint(c.out, question)
	answer, ok := c.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func describeError(err error) string {
	var validation apperr.ValidationError
	var denied apperr.PermissionDeniedError
	switch {
	case errors.As(err, &validation):
		return fmt.Sprintf("invalid %s", validation.Error())
	case errors.As(err, &denied):
		return fmt.Sprintf("permission %s not granted", denied.Which)
	case errors.Is(err, apperr.ErrCapabilityUnavailable):
		return "delivery is not available on this host"
	default:
		return err.Error()
	}
}
