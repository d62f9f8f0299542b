package service

import (
	"context"

	"employee-insights/insights-svc/internal/domain"
	"employee-insights/insights-svc/internal/storage"
)

type InsightServiceInterface interface {
	GetSummary(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error)
	GetDashboard(ctx context.Context) (domain.APIResponse[domain.DashboardStats], error)
	GetTopPositive(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error)
	GetTopNegative(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error)
	GetByWord(ctx context.Context, word string) (domain.APIResponse[[]domain.InsightSummary], error)
	GetTrendingLookups(ctx context.Context, period string, limit int) (domain.APIResponse[[]domain.LookupCount], error)
	GetWordQRCode(word string) ([]byte, error)
	Health(ctx context.Context) error
}

type InsightRepository interface {
	ListAll(ctx context.Context) ([]domain.InsightSummary, error)
	CountAll(ctx context.Context) (int64, error)
	SumTotalCount(ctx context.Context) (int64, error)
	SumByCategory(ctx context.Context) (domain.CategorySums, error)
	TopByPercentage(ctx context.Context, category domain.Category, threshold float64, limit int) ([]domain.InsightSummary, error)
	SampleOrderedByTotal(ctx context.Context, limit int) ([]domain.InsightSummary, error)
	SearchByWord(ctx context.Context, substring string) ([]domain.InsightSummary, error)
	Ping(ctx context.Context) error
}

type LookupPublisher interface {
	PublishLookup(ctx context.Context, event domain.LookupEvent) error
}

type TrendingReader interface {
	TopLookups(ctx context.Context, period string, limit int) ([]domain.LookupCount, error)
}

var (
	_ InsightServiceInterface = (*InsightService)(nil)
	_ InsightRepository       = (*storage.SQLRepository)(nil)
	_ LookupPublisher         = (*storage.KafkaPublisher)(nil)
	_ TrendingReader          = (*storage.RedisTrending)(nil)
)
