package domain

// DeliveryOutcome is reported asynchronously once a delivery attempt concluded.
type DeliveryOutcome struct {
	ID      string
	Outcome Status
}

// Valid rejects outcomes that cannot be applied: a missing id or a non-terminal status.
func (o DeliveryOutcome) Valid() bool {
	return o.ID != "" && o.Outcome.Terminal()
}

// Stats counts records per status.
type Stats struct {
	Pending int
	Sent    int
	Failed  int
}

func (s Stats) Total() int {
	return s.Pending + s.Sent + s.Failed
}
