package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/domain"
	"mathsolver/internal/service"
)

func TestTriggerRunsImmediately(t *testing.T) {
	m, p := setupProcessor()
	s := service.NewScheduler(p, service.SchedulerConfig{Interval: time.Hour})

	m.runs.On("Start", mock.Anything, mock.Anything).Return(nil)
	m.runs.On("Finish", mock.Anything, mock.Anything).Return(nil)
	m.source.On("ListProblems", mock.Anything).Return([]domain.RemoteFile{}, nil)
	m.submissions.On("FilterUnseen", mock.Anything, mock.Anything).Return([]domain.RemoteFile{}, nil)

	run, err := s.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual", run.Trigger)
	assert.False(t, s.Running())
}

func TestTriggerRejectsOverlappingRun(t *testing.T) {
	m, p := setupProcessor()
	s := service.NewScheduler(p, service.SchedulerConfig{Interval: time.Hour})

	started := make(chan struct{})
	release := make(chan time.Time)

	m.runs.On("Start", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(started) }).
		Return(nil)
	m.runs.On("Finish", mock.Anything, mock.Anything).Return(nil)
	m.source.On("ListProblems", mock.Anything).
		WaitUntil(release).
		Return([]domain.RemoteFile{}, nil)
	m.submissions.On("FilterUnseen", mock.Anything, mock.Anything).Return([]domain.RemoteFile{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Trigger(context.Background())
		done <- err
	}()

	<-started
	assert.True(t, s.Running())

	_, err := s.Trigger(context.Background())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Running())
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	_, p := setupProcessor()
	s := service.NewScheduler(p, service.SchedulerConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
