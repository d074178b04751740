// Package pump bridges native Go channels and slices to and from an mpsc
// channel using its cooperative Send/Recv primitives.
package pump

import (
	"context"

	"github.com/onsails/mpsc"
)

// FromChan reads values from a native Go channel and sends them to the
// Sender until the source channel closes. It returns nil on a drained
// source, a *mpsc.SendError once the receiver is gone, or ctx.Err().
func FromChan[T any](ctx context.Context, in <-chan T, tx *mpsc.Sender[T]) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-in:
			if !ok {
				return nil
			}
			if err := tx.Send(ctx, v); err != nil {
				return err
			}
		}
	}
}

// FromSlice sends the elements of values to the Sender in order. It returns
// a *mpsc.SendError once the receiver is gone, or ctx.Err().
func FromSlice[T any](ctx context.Context, values []T, tx *mpsc.Sender[T]) error {
	for _, v := range values {
		if err := tx.Send(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// ToChan drains the Receiver into a native Go channel. It returns nil once
// the mpsc channel is closed and drained, or ctx.Err(). The output channel
// is left open; closing it is the caller's concern. A cancellation that
// arrives after a value was dequeued but before the output accepted it
// discards that one in-flight value.
func ToChan[T any](ctx context.Context, rx *mpsc.Receiver[T], out chan<- T) error {
	for {
		v, err := rx.Recv(ctx)
		if err != nil {
			if mpsc.IsClosed(err) {
				return nil
			}
			return err
		}
		select {
		case out <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
