package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"AutopaintClient/internal/config"
	"AutopaintClient/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDispatcher отдаёт заготовленный результат; block=true — висит до
// отмены контекста, имитируя сетевой вызов.
type fakeDispatcher struct {
	res   *provider.Result
	err   error
	block bool
	calls atomic.Int32
}

func (f *fakeDispatcher) Send(ctx context.Context, _, _ string) (*provider.Result, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, context.Cause(ctx)
	}
	return f.res, f.err
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.RequestTimeoutSeconds = 5
	cfg.AbortGrace = 200 * time.Millisecond
	return cfg
}

func waitPoll(t *testing.T, s *Sender) Outcome {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if out, ok := s.Poll(); ok {
			return out
		}
		select {
		case <-deadline:
			t.Fatal("outcome was not delivered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStartDeliversOutcome(t *testing.T) {
	disp := &fakeDispatcher{res: &provider.Result{Provider: "a", Body: "{}"}}
	s := New(testConfig(), disp, zap.NewNop().Sugar())

	require.NoError(t, s.Start(context.Background(), "prompt", "img"))
	assert.True(t, s.Busy())

	out := waitPoll(t, s)
	require.NoError(t, out.Err)
	assert.Equal(t, provider.ID("a"), out.Result.Provider)
	assert.False(t, s.Busy())

	// Повторный опрос без новой отправки пуст
	_, ok := s.Poll()
	assert.False(t, ok)
}

func TestStartRejectsWhileBusy(t *testing.T) {
	disp := &fakeDispatcher{block: true}
	s := New(testConfig(), disp, zap.NewNop().Sugar())

	require.NoError(t, s.Start(context.Background(), "p", ""))
	assert.ErrorIs(t, s.Start(context.Background(), "p", ""), ErrBusy)
	assert.EqualValues(t, 1, disp.calls.Load())

	s.Abort()
}

func TestStartDeliversError(t *testing.T) {
	disp := &fakeDispatcher{err: errors.New("all providers failed")}
	s := New(testConfig(), disp, zap.NewNop().Sugar())

	require.NoError(t, s.Start(context.Background(), "p", ""))
	out := waitPoll(t, s)
	assert.ErrorContains(t, out.Err, "all providers failed")
}

func TestAbortSuppressesOutcome(t *testing.T) {
	disp := &fakeDispatcher{block: true}
	s := New(testConfig(), disp, zap.NewNop().Sugar())

	require.NoError(t, s.Start(context.Background(), "p", ""))
	s.Abort()

	assert.False(t, s.Busy())
	// Исход отменённой отправки не доставляется
	_, ok := s.Poll()
	assert.False(t, ok)

	// Новая отправка после отмены работает как обычно
	disp2 := &fakeDispatcher{res: &provider.Result{Provider: "b", Body: "{}"}}
	s2 := New(testConfig(), disp2, zap.NewNop().Sugar())
	require.NoError(t, s2.Start(context.Background(), "p", ""))
	out := waitPoll(t, s2)
	require.NoError(t, out.Err)
	assert.Equal(t, provider.ID("b"), out.Result.Provider)
}

func TestAbortWithoutSendIsNoop(t *testing.T) {
	s := New(testConfig(), &fakeDispatcher{}, zap.NewNop().Sugar())
	s.Abort()
	assert.False(t, s.Busy())
}

func TestRequestTimeout(t *testing.T) {
	disp := &fakeDispatcher{block: true}
	cfg := testConfig()
	cfg.RequestTimeoutSeconds = 1
	s := New(cfg, disp, zap.NewNop().Sugar())

	require.NoError(t, s.Start(context.Background(), "p", ""))
	out := waitPoll(t, s)
	assert.ErrorContains(t, out.Err, "request timeout")
}
