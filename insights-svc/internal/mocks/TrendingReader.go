package mocks

import (
	context "context"

	domain "employee-insights/insights-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// TrendingReader is a mock type for the TrendingReader type
type TrendingReader struct {
	mock.Mock
}

func (_m *TrendingReader) TopLookups(ctx context.Context, period string, limit int) ([]domain.LookupCount, error) {
	ret := _m.Called(ctx, period, limit)

	var r0 []domain.LookupCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.LookupCount)
	}
	return r0, ret.Error(1)
}

// NewTrendingReader creates a new instance of TrendingReader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTrendingReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *TrendingReader {
	m := &TrendingReader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
