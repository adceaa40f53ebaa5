package main

import (
	"fmt"
	"io"
	"sms-scheduler/domain"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var statusStyles = map[domain.Status]color.Style{
	domain.StatusPending: color.New(color.FgYellow),
	domain.StatusSent:    color.New(color.FgGreen),
	domain.StatusFailed:  color.New(color.FgRed),
}

func filterByStatus(messages []domain.ScheduledMessage, status string) []domain.ScheduledMessage {
	if status == "" {
		return messages
	}
	return lo.Filter(messages, func(item domain.ScheduledMessage, _ int) bool {
		return string(item.Status) == status
	})
}

func render(w io.Writer, messages []domain.ScheduledMessage, colours bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Status", "Scheduled at", "Recipient", "Body"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, message := range messages {
		table.Append([]string{
			message.ID,
			statusLabel(message.Status, colours),
			domain.FormatScheduledAt(message.ScheduledAt, time.Local),
			message.Recipient,
			domain.Preview(message.Body, domain.PreviewLength),
		})
	}
	table.Render()

	stats := lo.CountValuesBy(messages, func(item domain.ScheduledMessage) domain.Status {
		return item.Status
	})
	fmt.Fprintf(w, "\n%d messages: %d pending, %d sent, %d failed\n", len(messages),
		stats[domain.StatusPending], stats[domain.StatusSent], stats[domain.StatusFailed])
}

func statusLabel(status domain.Status, colours bool) string {
	style, ok := statusStyles[status]
	if !colours || !ok {
		return status.Label()
	}
	return style.Render(status.Label())
}
