package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRefreshRunner struct{ mock.Mock }

func (m *MockRefreshRunner) RefreshNow(ctx context.Context) (RefreshResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(RefreshResult)
	return res, args.Error(1)
}

func TestNewScheduler_Constructs(t *testing.T) {
	s := NewScheduler(new(MockRefreshRunner), 24*time.Hour)
	require.NotNil(t, s)
	require.Nil(t, s.sched)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := NewScheduler(new(MockRefreshRunner), 24*time.Hour)
	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	s := NewScheduler(new(MockRefreshRunner), 24*time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	require.NotNil(t, s.sched)

	cancel()

	// Wait until the shutdown goroutine clears the scheduler.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.sched == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Nil(t, s.sched, "expected scheduler to be shutdown after ctx cancel")
}

func TestScheduler_Shutdown_AfterStart_Idempotent(t *testing.T) {
	s := NewScheduler(new(MockRefreshRunner), 24*time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	runner := new(MockRefreshRunner)
	done := make(chan struct{}, 4)
	runner.On("RefreshNow", mock.Anything).Run(func(mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	}).Return(RefreshResult{}, nil)

	s := NewScheduler(runner, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled refresh never ran")
	}
}
