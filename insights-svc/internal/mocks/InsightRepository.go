package mocks

import (
	context "context"

	domain "employee-insights/insights-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// InsightRepository is a mock type for the InsightRepository type
type InsightRepository struct {
	mock.Mock
}

func (_m *InsightRepository) insights(ret mock.Arguments) ([]domain.InsightSummary, error) {
	var r0 []domain.InsightSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.InsightSummary)
	}
	return r0, ret.Error(1)
}

func (_m *InsightRepository) ListAll(ctx context.Context) ([]domain.InsightSummary, error) {
	return _m.insights(_m.Called(ctx))
}

func (_m *InsightRepository) CountAll(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *InsightRepository) SumTotalCount(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *InsightRepository) SumByCategory(ctx context.Context) (domain.CategorySums, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.CategorySums), ret.Error(1)
}

func (_m *InsightRepository) TopByPercentage(ctx context.Context, category domain.Category, threshold float64, limit int) ([]domain.InsightSummary, error) {
	return _m.insights(_m.Called(ctx, category, threshold, limit))
}

func (_m *InsightRepository) SampleOrderedByTotal(ctx context.Context, limit int) ([]domain.InsightSummary, error) {
	return _m.insights(_m.Called(ctx, limit))
}

func (_m *InsightRepository) SearchByWord(ctx context.Context, substring string) ([]domain.InsightSummary, error) {
	return _m.insights(_m.Called(ctx, substring))
}

func (_m *InsightRepository) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewInsightRepository creates a new instance of InsightRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewInsightRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *InsightRepository {
	m := &InsightRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
