package mpsc

import "github.com/onsails/mpsc/telemetry"

// The suspension points of the channel are expressed as waiters: a producer
// or the consumer that cannot make progress registers a waiter under the
// channel lock and is signalled once, when the state it is waiting on may
// have changed. Cooperative callers park a waiter in a select against their
// context; blockOn parks it with a bare channel receive, which converts the
// same suspension into plain thread blocking without creating any scheduler
// context of its own.

type waiter struct {
	ready chan struct{}
}

func newWaiter() *waiter {
	return &waiter{ready: make(chan struct{}, 1)}
}

// signal wakes the parked caller. At most one signal is buffered; extra
// signals while the waiter is already armed are coalesced.
func (w *waiter) signal() {
	select {
	case w.ready <- struct{}{}:
	default:
	}
}

// park blocks the calling goroutine until the waiter is signalled.
func (w *waiter) park() {
	<-w.ready
}

// pollFunc attempts one operation against the locked channel state. A nil
// waiter means the operation resolved (value or terminal error); a non-nil
// waiter was armed atomically with the failed attempt and must be parked
// before retrying.
type pollFunc[R any] func() (R, error, *waiter)

// blockOn drives a suspending operation to completion on the calling
// goroutine. Each failed poll parks the goroutine on the armed waiter until
// the channel signals a state change; the loop then re-polls. The call
// occupies exactly one goroutine, performs no work on any other, and
// resolves exactly one operation. Transient conditions (ErrEmpty, ErrFull)
// never escape: the poll only reports them together with an armed waiter.
func blockOn[R any](col telemetry.Collector, id, side string, poll pollFunc[R]) (R, error) {
	for {
		v, err, w := poll()
		if w == nil {
			return v, err
		}
		col.IncParked(id, side)
		w.park()
	}
}
