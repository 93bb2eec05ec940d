package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mathsolver/internal/domain"
)

// MockProblemSource is a mock implementation of port.ProblemSource.
type MockProblemSource struct {
	mock.Mock
}

func (m *MockProblemSource) ListProblems(ctx context.Context) ([]domain.RemoteFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteFile), args.Error(1)
}

func (m *MockProblemSource) Download(ctx context.Context, file domain.RemoteFile) (*domain.Submission, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockProblemSource) PublishSolution(ctx context.Context, problemName, content string) (string, error) {
	args := m.Called(ctx, problemName, content)
	return args.String(0), args.Error(1)
}

func (m *MockProblemSource) UpdateIndexPage(ctx context.Context, entry domain.IndexEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProblemSource) Stats(ctx context.Context) (*domain.RepoStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepoStats), args.Error(1)
}
