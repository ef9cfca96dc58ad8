package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"amorlias/internal/gst"
	"amorlias/internal/label"
)

// MockLocker is a mock implementation of port.Locker. The returned release
// func is a no-op.
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	args := m.Called(ctx, key, ttl)
	return func() {}, args.Bool(0), args.Error(1)
}

// MockLabelRenderer is a mock implementation of port.LabelRenderer.
type MockLabelRenderer struct {
	mock.Mock
}

func (m *MockLabelRenderer) Render(l *label.ShippingLabel) ([]byte, error) {
	args := m.Called(l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockHSNRepo is a mock implementation of port.HSNRepository.
type MockHSNRepo struct {
	mock.Mock
}

func (m *MockHSNRepo) LoadAll(ctx context.Context) ([]gst.HSNEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gst.HSNEntry), args.Error(1)
}

// MockMetrics is a mock implementation of port.Metrics.
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) LabelRendered(format string) { m.Called(format) }

func (m *MockMetrics) UnknownCourierSeen() { m.Called() }

func (m *MockMetrics) SaleRecorded(method string) { m.Called(method) }

func (m *MockMetrics) EmailDelivered(ok bool) { m.Called(ok) }
