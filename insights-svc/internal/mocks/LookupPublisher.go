package mocks

import (
	context "context"

	domain "employee-insights/insights-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// LookupPublisher is a mock type for the LookupPublisher type
type LookupPublisher struct {
	mock.Mock
}

func (_m *LookupPublisher) PublishLookup(ctx context.Context, event domain.LookupEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewLookupPublisher creates a new instance of LookupPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLookupPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *LookupPublisher {
	m := &LookupPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
