package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"employee-insights/insights-svc/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrWordRequired  = errors.New("word parameter is required")
	ErrQRUnavailable = errors.New("qr code generator is not configured")
)

const (
	MsgWordRequired = "Word parameter is required"

	msgSummary     = "Successfully retrieved all insights summary"
	msgDashboard   = "Successfully retrieved dashboard statistics"
	msgTopPositive = "Successfully retrieved top positive insights"
	msgTopNegative = "Successfully retrieved top negative insights"
	msgByWord      = "Successfully retrieved insights for '%s'"
	msgTrending    = "Successfully retrieved trending lookups"
)

const (
	sentimentThreshold   = 70
	dashboardTopLimit    = 5
	dashboardSampleLimit = 20
	topListLimit         = 10

	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 50
)

type InsightService struct {
	repository InsightRepository
	publisher  LookupPublisher
	trending   TrendingReader
	qr         QRGenerator
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewInsightService wires the service. publisher, trending and qr are
// optional and may be nil.
func NewInsightService(repository InsightRepository, publisher LookupPublisher, trending TrendingReader, qr QRGenerator, log logrus.FieldLogger) *InsightService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &InsightService{
		repository: repository,
		publisher:  publisher,
		trending:   trending,
		qr:         qr,
		log:        log,
		now:        time.Now,
	}
}

func (s *InsightService) GetSummary(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	insights, err := s.repository.ListAll(ctx)
	if err != nil {
		return domain.APIResponse[[]domain.InsightSummary]{}, fmt.Errorf("list insights: %w", err)
	}
	return domain.OK(insights, msgSummary), nil
}

// GetDashboard runs the dashboard queries concurrently. The first failure
// cancels the remaining queries and is returned.
func (s *InsightService) GetDashboard(ctx context.Context) (domain.APIResponse[domain.DashboardStats], error) {
	var (
		stats domain.DashboardStats
		sums  domain.CategorySums
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalInsightCount, err = s.repository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFeedbackCount, err = s.repository.SumTotalCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		sums, err = s.repository.SumByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TopPositive, err = s.repository.TopByPercentage(gctx, domain.CategoryPositive, sentimentThreshold, dashboardTopLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.TopNegative, err = s.repository.TopByPercentage(gctx, domain.CategoryNegative, sentimentThreshold, dashboardTopLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.SampleAll, err = s.repository.SampleOrderedByTotal(gctx, dashboardSampleLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.APIResponse[domain.DashboardStats]{}, fmt.Errorf("dashboard: %w", err)
	}

	grand := sums.Total()
	stats.PositiveRatio = Ratio(sums.Positive, grand)
	stats.NegativeRatio = Ratio(sums.Negative, grand)
	stats.NeutralRatio = Ratio(sums.Neutral, grand)

	return domain.OK(stats, msgDashboard), nil
}

// Ratio returns part as a percentage of grand rounded to two decimals,
// halves away from zero. A zero grand total yields 0.
func Ratio(part, grand int64) float64 {
	if grand == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(grand)*100*100) / 100
}

func (s *InsightService) GetTopPositive(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	insights, err := s.repository.TopByPercentage(ctx, domain.CategoryPositive, sentimentThreshold, topListLimit)
	if err != nil {
		return domain.APIResponse[[]domain.InsightSummary]{}, fmt.Errorf("top positive: %w", err)
	}
	return domain.OK(insights, msgTopPositive), nil
}

func (s *InsightService) GetTopNegative(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	insights, err := s.repository.TopByPercentage(ctx, domain.CategoryNegative, sentimentThreshold, topListLimit)
	if err != nil {
		return domain.APIResponse[[]domain.InsightSummary]{}, fmt.Errorf("top negative: %w", err)
	}
	return domain.OK(insights, msgTopNegative), nil
}

// GetByWord returns every insight whose word contains word. An empty word is
// answered with a failed envelope and ErrWordRequired without touching the
// store.
func (s *InsightService) GetByWord(ctx context.Context, word string) (domain.APIResponse[[]domain.InsightSummary], error) {
	if word == "" {
		return domain.Fail([]domain.InsightSummary{}, MsgWordRequired), ErrWordRequired
	}

	insights, err := s.repository.SearchByWord(ctx, word)
	if err != nil {
		return domain.APIResponse[[]domain.InsightSummary]{}, fmt.Errorf("search %q: %w", word, err)
	}

	if s.publisher != nil {
		event := domain.LookupEvent{
			Type:        domain.LookupEventType,
			Word:        word,
			ResultCount: len(insights),
			Timestamp:   s.now().UTC(),
		}
		if err := s.publisher.PublishLookup(ctx, event); err != nil {
			s.log.WithError(err).WithField("word", word).Warn("Failed to publish lookup event")
		}
	}

	return domain.OK(insights, fmt.Sprintf(msgByWord, word)), nil
}

func (s *InsightService) GetTrendingLookups(ctx context.Context, period string, limit int) (domain.APIResponse[[]domain.LookupCount], error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	if limit > MaxTrendingLimit {
		limit = MaxTrendingLimit
	}

	if s.trending == nil {
		return domain.OK([]domain.LookupCount{}, msgTrending), nil
	}

	lookups, err := s.trending.TopLookups(ctx, period, limit)
	if err != nil {
		return domain.APIResponse[[]domain.LookupCount]{}, fmt.Errorf("trending lookups: %w", err)
	}
	return domain.OK(lookups, msgTrending), nil
}

func (s *InsightService) GetWordQRCode(word string) ([]byte, error) {
	if word == "" {
		return nil, ErrWordRequired
	}
	if s.qr == nil {
		return nil, ErrQRUnavailable
	}
	return s.qr.Generate(word)
}

func (s *InsightService) Health(ctx context.Context) error {
	return s.repository.Ping(ctx)
}
