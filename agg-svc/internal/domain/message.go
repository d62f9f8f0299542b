package domain

import "time"

const LookupEventType = "word_lookup"

// LookupEvent is the message insights-svc publishes after a word search.
type LookupEvent struct {
	Type        string    `json:"type"`
	Word        string    `json:"word"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}
