package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mathsolver/internal/port"
)

// MockMailTransport is a mock implementation of port.MailTransport.
type MockMailTransport struct {
	mock.Mock
}

func (m *MockMailTransport) Send(ctx context.Context, mail port.OutboundMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
