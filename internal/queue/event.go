// Package queue defines the click-event payload exchanged over the
// message broker plus the publisher and background consumer that move
// it. The pipeline is strictly best-effort: a broker outage must
// never fail a redirect.
package queue

// ClickQueueName is the durable queue carrying view events.
const ClickQueueName = "clicks.recorded"

// ClickRecordedEvent is published once per resolved redirect. It
// carries everything the consumer needs to persist the analytics row
// without re-querying the primary database.
type ClickRecordedEvent struct {
	Shortcode  string  `json:"shortcode"`
	TargetURL  string  `json:"target_url"`
	Country    *string `json:"country,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
