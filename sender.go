package mpsc

import "context"

// Sender is a producer handle. A channel may have many Sender handles; use
// Clone to hand one to each producer. A single handle must not be used from
// multiple goroutines without external synchronization.
type Sender[T any] struct {
	c      *core[T]
	closed bool
}

// Clone returns a new independent Sender for the same channel. Cloning a
// closed handle yields another closed handle.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.closed {
		return &Sender[T]{c: s.c, closed: true}
	}
	s.c.addSender()
	return &Sender[T]{c: s.c}
}

// Close retires this handle. Once every Sender is closed the channel closes
// for receives: the consumer drains the remaining buffer and then observes
// the closed state. Close is idempotent.
func (s *Sender[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.c.dropSender()
}

// TrySend attempts an immediate enqueue. It returns nil on success, ErrFull
// when the buffer is at capacity, or a *SendError carrying v back when the
// receiver is gone.
func (s *Sender[T]) TrySend(v T) error {
	if s.closed {
		return &SendError[T]{Value: v}
	}
	return s.c.trySend(v)
}

// Send enqueues v, suspending cooperatively until space frees up. It returns
// nil on success, a *SendError carrying v back once the receiver is gone, or
// ctx.Err() if the context is done first.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	if s.closed {
		return &SendError[T]{Value: v}
	}
	for {
		err, w := s.c.pollSend(v)
		if w == nil {
			return err
		}
		select {
		case <-w.ready:
		case <-ctx.Done():
			s.c.cancelSend(w)
			return ctx.Err()
		}
	}
}

// BlockingSend enqueues v, blocking the calling goroutine until space frees
// up or the channel closes permanently. It returns nil on success or a
// *SendError carrying v back. The call may block for an unbounded time and
// offers no cancellation; invoke it only from goroutines dedicated to
// blocking work, never from inside a cooperative event loop.
func (s *Sender[T]) BlockingSend(v T) error {
	if s.closed {
		return &SendError[T]{Value: v}
	}
	_, err := blockOn(s.c.col, s.c.id, sideSend, func() (struct{}, error, *waiter) {
		err, w := s.c.pollSend(v)
		return struct{}{}, err, w
	})
	return err
}

// OptimisticBlockingSend first attempts an immediate enqueue and returns
// without blocking when the buffer has space or the channel is closed. Only
// a full buffer falls back to BlockingSend with the same message.
func (s *Sender[T]) OptimisticBlockingSend(v T) error {
	if s.closed {
		return &SendError[T]{Value: v}
	}
	err := s.c.trySend(v)
	if err == ErrFull {
		return s.BlockingSend(v)
	}
	return err
}

// Len returns the number of currently buffered messages.
func (s *Sender[T]) Len() int {
	return s.c.len()
}

// Cap returns the channel's fixed capacity.
func (s *Sender[T]) Cap() int {
	return s.c.capacity()
}

// IsEmpty reports whether the buffer currently holds no messages.
func (s *Sender[T]) IsEmpty() bool {
	return s.c.len() == 0
}

// IsClosed reports whether sends can no longer succeed: the receiver is gone
// or this handle is closed.
func (s *Sender[T]) IsClosed() bool {
	return s.closed || s.c.closedForSend()
}
