package recurring_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

type fakeGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, _ calendar.Date) (int, error) {
	g.calls.Add(1)
	return 1, g.err
}

func TestWorker_Run(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("transient")}
	w := recurring.NewWorker(gen, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return gen.calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
