// Package worker confines a tracker.Store to a single goroutine and exposes
// it through synchronous requests.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amonks/classwork/tracker"
)

// ErrStopped is returned for requests made after Stop.
var ErrStopped = errors.New("store worker stopped")

// Worker owns a store. Every Do call runs on the worker goroutine, so the
// store is never touched concurrently.
type Worker struct {
	requests chan request
	quit     chan struct{}
	done     chan struct{}

	stopOnce sync.Once
	closeErr error
}

type request struct {
	fn    func(*tracker.Store) error
	reply chan error
}

// Start launches the worker goroutine for store. The worker takes ownership;
// callers must not use store directly afterwards.
func Start(store *tracker.Store) *Worker {
	w := &Worker{
		requests: make(chan request),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run(store)
	return w
}

func (w *Worker) run(store *tracker.Store) {
	defer close(w.done)
	for {
		select {
		case req := <-w.requests:
			req.reply <- invoke(store, req.fn)
		case <-w.quit:
			w.closeErr = store.Close()
			return
		}
	}
}

func invoke(store *tracker.Store, fn func(*tracker.Store) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store request panicked: %v", r)
		}
	}()
	return fn(store)
}

// Do runs fn against the store on the worker goroutine and waits for it.
// If ctx ends first Do returns ctx.Err(); a request already handed to the
// worker still runs to completion.
func (w *Worker) Do(ctx context.Context, fn func(*tracker.Store) error) error {
	req := request{fn: fn, reply: make(chan error, 1)}

	select {
	case w.requests <- req:
	case <-w.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the store, saving it, and ends the worker. It returns the
// close error; later calls return the same error.
func (w *Worker) Stop() error {
	w.stopOnce.Do(func() {
		close(w.quit)
	})
	<-w.done
	return w.closeErr
}
