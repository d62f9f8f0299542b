// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	context "context"

	domain "employee-insights/insights-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// InsightServiceInterface is a mock type for the InsightServiceInterface type
type InsightServiceInterface struct {
	mock.Mock
}

func (_m *InsightServiceInterface) GetSummary(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.APIResponse[[]domain.InsightSummary]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetDashboard(ctx context.Context) (domain.APIResponse[domain.DashboardStats], error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.APIResponse[domain.DashboardStats]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetTopPositive(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.APIResponse[[]domain.InsightSummary]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetTopNegative(ctx context.Context) (domain.APIResponse[[]domain.InsightSummary], error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.APIResponse[[]domain.InsightSummary]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetByWord(ctx context.Context, word string) (domain.APIResponse[[]domain.InsightSummary], error) {
	ret := _m.Called(ctx, word)
	return ret.Get(0).(domain.APIResponse[[]domain.InsightSummary]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetTrendingLookups(ctx context.Context, period string, limit int) (domain.APIResponse[[]domain.LookupCount], error) {
	ret := _m.Called(ctx, period, limit)
	return ret.Get(0).(domain.APIResponse[[]domain.LookupCount]), ret.Error(1)
}

func (_m *InsightServiceInterface) GetWordQRCode(word string) ([]byte, error) {
	ret := _m.Called(word)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(string) []byte); ok {
		r0 = rf(word)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *InsightServiceInterface) Health(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewInsightServiceInterface creates a new instance of InsightServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewInsightServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *InsightServiceInterface {
	m := &InsightServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
