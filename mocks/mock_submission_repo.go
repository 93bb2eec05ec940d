package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mathsolver/internal/domain"
)

// MockSubmissionRepo is a mock implementation of port.SubmissionRepository.
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) FilterUnseen(ctx context.Context, files []domain.RemoteFile) ([]domain.RemoteFile, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteFile), args.Error(1)
}

func (m *MockSubmissionRepo) Claim(ctx context.Context, sub *domain.Submission) (*domain.Result, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockSubmissionRepo) Finish(ctx context.Context, res *domain.Result) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockSubmissionRepo) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockSubmissionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Result, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Result), args.Error(1)
}

func (m *MockSubmissionRepo) ListAll(ctx context.Context) ([]domain.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Result), args.Error(1)
}
