package mpsc

import "context"

// Receiver is the single consumer handle of a channel. It must not be used
// from multiple goroutines without external synchronization.
type Receiver[T any] struct {
	c      *core[T]
	closed bool
}

// Close retires the consumer and closes the channel for sends: buffered
// messages are discarded and every pending or subsequent send fails with a
// *SendError carrying its message. Close is idempotent.
func (r *Receiver[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.c.dropReceiver()
}

// TryRecv attempts an immediate dequeue. It returns the next message,
// ErrEmpty when the buffer holds none but senders remain, or ErrClosed once
// all senders are gone and the buffer is drained.
func (r *Receiver[T]) TryRecv() (T, error) {
	var zero T
	if r.closed {
		return zero, ErrClosed
	}
	return r.c.tryRecv()
}

// Recv dequeues the next message, suspending cooperatively until one
// arrives. It returns ErrClosed once the channel is closed and drained, or
// ctx.Err() if the context is done first.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	if r.closed {
		return zero, ErrClosed
	}
	for {
		v, err, w := r.c.pollRecv()
		if w == nil {
			return v, err
		}
		select {
		case <-w.ready:
		case <-ctx.Done():
			r.c.cancelRecv(w)
			return zero, ctx.Err()
		}
	}
}

// BlockingRecv dequeues the next message, blocking the calling goroutine
// until one arrives. The second return value is false once the channel is
// closed and drained; repeated calls after that keep returning false. The
// call may block for an unbounded time and offers no cancellation; invoke it
// only from goroutines dedicated to blocking work, never from inside a
// cooperative event loop.
func (r *Receiver[T]) BlockingRecv() (T, bool) {
	var zero T
	if r.closed {
		return zero, false
	}
	v, err := blockOn(r.c.col, r.c.id, sideRecv, r.c.pollRecv)
	if err != nil {
		return zero, false
	}
	return v, true
}

// OptimisticBlockingRecv first attempts an immediate dequeue and returns
// without blocking when a message is buffered or the channel is closed. Only
// an empty-but-open channel falls back to BlockingRecv.
func (r *Receiver[T]) OptimisticBlockingRecv() (T, bool) {
	var zero T
	if r.closed {
		return zero, false
	}
	v, err := r.c.tryRecv()
	switch {
	case err == nil:
		return v, true
	case err == ErrEmpty:
		return r.BlockingRecv()
	default:
		return zero, false
	}
}

// Len returns the number of currently buffered messages.
func (r *Receiver[T]) Len() int {
	return r.c.len()
}

// Cap returns the channel's fixed capacity.
func (r *Receiver[T]) Cap() int {
	return r.c.capacity()
}

// IsEmpty reports whether the buffer currently holds no messages.
func (r *Receiver[T]) IsEmpty() bool {
	return r.c.len() == 0
}

// IsClosed reports whether receives can no longer yield a message: all
// senders are gone and the buffer is drained, or this handle is closed.
func (r *Receiver[T]) IsClosed() bool {
	return r.closed || r.c.closedForRecv()
}
