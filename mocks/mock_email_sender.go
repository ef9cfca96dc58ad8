package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"amorlias/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOrderShippedEmail(ctx context.Context, toEmail, toName string, msg port.ShipmentEmail) error {
	args := m.Called(ctx, toEmail, toName, msg)
	return args.Error(0)
}
