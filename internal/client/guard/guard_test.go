package guard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_TryAcquire(t *testing.T) {
	g := New()

	assert.True(t, g.TryAcquire("q1"))
	assert.False(t, g.TryAcquire("q1"), "second acquire without release must fail")
	assert.True(t, g.TryAcquire("q2"), "other ids are independent")

	g.Release("q1")
	assert.True(t, g.TryAcquire("q1"))
}

func TestGuard_ReleaseUnknownIsNoop(t *testing.T) {
	g := New()
	g.Release("missing")
	assert.False(t, g.InFlight("missing"))
}

func TestGuard_Acquire(t *testing.T) {
	g := New()

	release, err := g.Acquire("n1")
	require.NoError(t, err)
	assert.True(t, g.InFlight("n1"))

	_, err = g.Acquire("n1")
	assert.ErrorIs(t, err, ErrConflict)

	release()
	release() // повторный вызов безопасен
	assert.False(t, g.InFlight("n1"))
}

func TestGuard_Acquire_ReleasedOnPanic(t *testing.T) {
	g := New()

	func() {
		defer func() { _ = recover() }()

		release, err := g.Acquire("a1")
		require.NoError(t, err)
		defer release()

		panic("boom")
	}()

	assert.False(t, g.InFlight("a1"))
}

func TestGuard_AcquireAll(t *testing.T) {
	g := New()

	require.True(t, g.TryAcquire("n2"))

	_, err := g.AcquireAll("n1", "n2", "n3")
	assert.ErrorIs(t, err, ErrConflict)
	// ничего не захвачено
	assert.False(t, g.InFlight("n1"))
	assert.False(t, g.InFlight("n3"))

	g.Release("n2")
	release, err := g.AcquireAll("n1", "n2", "n3")
	require.NoError(t, err)
	assert.True(t, g.InFlight("n1"))
	assert.True(t, g.InFlight("n3"))

	release()
	assert.False(t, g.InFlight("n1"))
	assert.False(t, g.InFlight("n2"))
	assert.False(t, g.InFlight("n3"))
}

func TestGuard_ConcurrentAcquire(t *testing.T) {
	g := New()

	var admitted int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("q1") {
				atomic.AddInt32(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted)
}

func TestGuard_Reset(t *testing.T) {
	g := New()
	require.True(t, g.TryAcquire("q1"))

	g.Reset()
	assert.True(t, g.TryAcquire("q1"))
}
