package domain

import "time"

// InsightSummary is one pre-aggregated sentiment row for a single word.
// Rows are written by the ingestion pipeline; this service only reads them.
type InsightSummary struct {
	ID            int     `json:"id"`
	Word          string  `json:"word"`
	TotalCount    int     `json:"total_count"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	NeutralCount  int     `json:"neutral_count"`
	PositivePct   float64 `json:"positive_pct"`
	NegativePct   float64 `json:"negative_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	CreatedAt     string  `json:"created_at"`
}

type DashboardStats struct {
	TotalInsightCount  int64            `json:"total_insight_count"`
	TotalFeedbackCount int64            `json:"total_feedback_count"`
	PositiveRatio      float64          `json:"positive_ratio"`
	NegativeRatio      float64          `json:"negative_ratio"`
	NeutralRatio       float64          `json:"neutral_ratio"`
	TopPositive        []InsightSummary `json:"top_positive"`
	TopNegative        []InsightSummary `json:"top_negative"`
	SampleAll          []InsightSummary `json:"sample_all"`
}

// APIResponse is the envelope every JSON endpoint responds with.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func OK[T any](data T, message string) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](data T, message string) APIResponse[T] {
	return APIResponse[T]{Success: false, Data: data, Message: message}
}

// Category selects one of the sentiment percentage columns.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
)

type CategorySums struct {
	Positive int64
	Negative int64
	Neutral  int64
}

func (s CategorySums) Total() int64 {
	return s.Positive + s.Negative + s.Neutral
}

const LookupEventType = "word_lookup"

// LookupEvent is published to Kafka after every successful word search.
type LookupEvent struct {
	Type        string    `json:"type"`
	Word        string    `json:"word"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}

type LookupCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}
