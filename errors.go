package mpsc

import "errors"

var (
	// ErrEmpty is returned by TryRecv when the buffer holds no message but
	// senders remain. It is a transient condition, never a failure.
	ErrEmpty = errors.New("mpsc: channel empty")

	// ErrFull is returned by TrySend when the buffer is at capacity but the
	// receiver remains. It is a transient condition, never a failure.
	ErrFull = errors.New("mpsc: channel full")

	// ErrClosed reports the terminal state: for receives, all senders are
	// gone and the buffer is drained; for sends, the receiver is gone.
	ErrClosed = errors.New("mpsc: channel closed")
)

// SendError is returned by failed sends. It carries the rejected message back
// to the caller so no data is silently lost.
type SendError[T any] struct {
	Value T
}

// Error implements the error interface.
func (e *SendError[T]) Error() string {
	return "mpsc: send on closed channel"
}

// Unwrap makes errors.Is(err, ErrClosed) hold for any SendError.
func (e *SendError[T]) Unwrap() error {
	return ErrClosed
}

// IsClosed reports whether the given error is the terminal closed condition.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsEmpty reports whether the given error is the transient empty condition.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsFull reports whether the given error is the transient full condition.
func IsFull(err error) bool {
	return errors.Is(err, ErrFull)
}
