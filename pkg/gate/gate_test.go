package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

func TestLocalAcquireRelease(t *testing.T) {
	g := NewLocal(time.Second)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)
	release()

	release, err = g.Acquire(context.Background())
	require.NoError(t, err)
	release()
}

func TestLocalTimesOutWhileHeld(t *testing.T) {
	g := NewLocal(50 * time.Millisecond)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	_, err = g.Acquire(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrLockBusy))
}

func TestLocalSecondWaiterGetsGateAfterRelease(t *testing.T) {
	g := NewLocal(2 * time.Second)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r2, err2 := g.Acquire(context.Background())
		if err2 == nil {
			close(acquired)
			r2()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while gate was held")
	case <-time.After(100 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never completed after release")
	}
}

func TestLocalSerializesCriticalSections(t *testing.T) {
	g := NewLocal(5 * time.Second)

	var inside, maxInside int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := g.Acquire(context.Background())
			if err != nil {
				return
			}
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
}

func TestLocalReleaseIsIdempotent(t *testing.T) {
	g := NewLocal(time.Second)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)

	release()
	release()

	r2, err := g.Acquire(context.Background())
	require.NoError(t, err)
	r2()
}

func TestLocalHonorsContextCancellation(t *testing.T) {
	g := NewLocal(10 * time.Second)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = g.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
