package pager

import (
	"context"
)

// Loader is the part of Controller a Trigger drives.
type Loader interface {
	LoadNext(ctx context.Context) error
}

// Trigger bridges a stream of visibility events (the end of the rendered
// list came into view) to LoadNext calls, one call per event. Duplicate
// events that arrive while a fetch is pending are absorbed by the
// controller's own guard.
type Trigger struct {
	loader  Loader
	onError func(error)
	onLoad  func()
}

// TriggerOption configures a Trigger.
type TriggerOption func(*Trigger)

// OnError registers a callback for LoadNext failures.
func OnError(f func(error)) TriggerOption {
	return func(t *Trigger) {
		t.onError = f
	}
}

// OnLoad registers a callback invoked after every LoadNext call that
// returned without error, including no-op calls.
func OnLoad(f func()) TriggerOption {
	return func(t *Trigger) {
		t.onLoad = f
	}
}

// NewTrigger creates a Trigger for loader.
func NewTrigger(loader Loader, opts ...TriggerOption) *Trigger {
	t := &Trigger{loader: loader}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fire handles a single visibility event.
func (t *Trigger) Fire(ctx context.Context) error {
	err := t.loader.LoadNext(ctx)
	if err != nil {
		if t.onError != nil {
			t.onError(err)
		}
		return err
	}
	if t.onLoad != nil {
		t.onLoad()
	}
	return nil
}

// Watch calls Fire for every event received until events is closed or ctx
// is done. Load errors are reported through OnError and do not stop the
// watch; the next event retries.
func (t *Trigger) Watch(ctx context.Context, events <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return nil
			}
			_ = t.Fire(ctx) //nolint:errcheck // reported through OnError
		}
	}
}
