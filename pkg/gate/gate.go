// Package gate serializes mutations of the canonical store. Every write path
// acquires the gate first, waits up to a configured timeout, and releases it
// when the read-modify-write cycle completes.
package gate

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

// Release frees the gate. Safe to call more than once.
type Release func()

// Gate grants exclusive access to the store for the duration of one mutation.
type Gate interface {
	// Acquire blocks until the gate is free, the timeout elapses or ctx is
	// cancelled. On timeout it returns ErrLockBusy.
	Acquire(ctx context.Context) (Release, error)
}

// Local is an in-process Gate for single-instance deployments.
type Local struct {
	slot    chan struct{}
	timeout time.Duration
}

// NewLocal builds a free local gate with the given acquire timeout.
func NewLocal(timeout time.Duration) *Local {
	g := &Local{slot: make(chan struct{}, 1), timeout: timeout}
	g.slot <- struct{}{}
	return g
}

// Acquire takes the singleton slot or gives up after the timeout.
func (g *Local) Acquire(ctx context.Context) (Release, error) {
	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case <-g.slot:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, apperrors.ErrLockBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() { g.slot <- struct{}{} })
	}, nil
}
