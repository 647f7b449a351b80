// Package memo holds process-lifetime caches.
package memo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Once caches the result of a single fill for the lifetime of the value.
// The first Get runs fill; concurrent callers wait for it, and every later
// call returns the same value and error. There is no invalidation: a failed
// fill stays failed until the process restarts.
type Once[T any] struct {
	once   sync.Once
	loaded atomic.Bool
	val    T
	err    error
}

// Get returns the cached value, running fill on first use.
func (o *Once[T]) Get(ctx context.Context, fill func(context.Context) (T, error)) (T, error) {
	o.once.Do(func() {
		defer o.loaded.Store(true)
		defer func() {
			if r := recover(); r != nil {
				o.err = fmt.Errorf("memo fill panicked: %v", r)
			}
		}()
		o.val, o.err = fill(ctx)
	})
	return o.val, o.err
}

// Loaded reports whether the fill has completed, successfully or not.
func (o *Once[T]) Loaded() bool {
	return o.loaded.Load()
}
