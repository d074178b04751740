package mpsc

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/onsails/mpsc/internal/ring"
	"github.com/onsails/mpsc/telemetry"
)

const (
	sideSend = "send"
	sideRecv = "recv"
)

// core holds the state shared by all handles of one channel. Every state
// transition, waiter registration and wakeup happens under mu, so a waiter
// armed together with a failed attempt can never miss the signal that would
// have satisfied it.
type core[T any] struct {
	mu       sync.Mutex
	buf      *ring.Buffer[T]
	senders  int // live Sender handles
	recvGone bool
	sendq    []*waiter // producers waiting for space, FIFO
	recvw    *waiter   // the single consumer, when waiting

	id  string
	col telemetry.Collector
	log *zerolog.Logger
}

// NewChannel creates a bounded multi-producer, single-consumer channel and
// returns its two handles. Capacity must be at least 1 and is fixed for the
// channel's lifetime. The Sender may be cloned to add producers; the channel
// closes for receives once every Sender is closed and the buffer is drained,
// and closes for sends once the Receiver is closed.
func NewChannel[T any](capacity int, params ...Params) (*Sender[T], *Receiver[T]) {
	if capacity < 1 {
		panic("mpsc: channel capacity must be at least 1")
	}
	p := applyParams(params...)
	c := &core[T]{
		buf:     ring.New[T](capacity),
		senders: 1,
		id:      p.ID,
		col:     p.Collector,
		log:     p.Logger,
	}
	c.log.Debug().Str("channel", c.id).Int("capacity", capacity).Msg("channel created")
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// popLocked is the immediate receive attempt. Freed space wakes one waiting
// producer.
func (c *core[T]) popLocked() (T, error) {
	var zero T
	if v, ok := c.buf.Pop(); ok {
		c.col.IncReceived(c.id)
		c.col.SetOccupancy(c.id, c.buf.Len())
		c.wakeSendLocked()
		return v, nil
	}
	if c.senders == 0 {
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

// pushLocked is the immediate send attempt. A buffered message wakes the
// consumer if it is waiting.
func (c *core[T]) pushLocked(v T) error {
	if c.recvGone {
		c.col.IncRejected(c.id)
		return &SendError[T]{Value: v}
	}
	if !c.buf.Push(v) {
		return ErrFull
	}
	c.col.IncSent(c.id)
	c.col.SetOccupancy(c.id, c.buf.Len())
	c.wakeRecvLocked()
	return nil
}

func (c *core[T]) tryRecv() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popLocked()
}

func (c *core[T]) trySend(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushLocked(v)
}

// pollRecv is the suspending receive attempt: when it must wait it arms a
// waiter atomically with the failed pop.
func (c *core[T]) pollRecv() (T, error, *waiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.popLocked()
	if err == ErrEmpty {
		w := newWaiter()
		c.recvw = w
		return v, err, w
	}
	return v, err, nil
}

// pollSend is the suspending send attempt: when it must wait it joins the
// FIFO queue of waiting producers atomically with the failed push.
func (c *core[T]) pollSend(v T) (error, *waiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.pushLocked(v)
	if err == ErrFull {
		w := newWaiter()
		c.sendq = append(c.sendq, w)
		return err, w
	}
	return err, nil
}

func (c *core[T]) wakeRecvLocked() {
	if c.recvw != nil {
		c.recvw.signal()
		c.recvw = nil
	}
}

func (c *core[T]) wakeSendLocked() {
	if len(c.sendq) > 0 {
		c.sendq[0].signal()
		c.sendq = c.sendq[1:]
	}
}

// cancelRecv retracts an armed receive waiter after a context cancellation.
// A signal that already fired is harmless: the next attempt re-checks the
// state under the lock before parking again.
func (c *core[T]) cancelRecv(w *waiter) {
	c.mu.Lock()
	if c.recvw == w {
		c.recvw = nil
	}
	c.mu.Unlock()
}

// cancelSend retracts a queued send waiter. If the waiter was already
// signalled its wakeup is handed to the next queued producer so the freed
// slot is not stranded.
func (c *core[T]) cancelSend(w *waiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sendq {
		if c.sendq[i] == w {
			c.sendq = append(c.sendq[:i], c.sendq[i+1:]...)
			return
		}
	}
	c.wakeSendLocked()
}

// addSender registers one more live producer handle.
func (c *core[T]) addSender() {
	c.mu.Lock()
	c.senders++
	c.mu.Unlock()
}

// dropSender retires one producer handle. The last one closes the channel
// for receives: the consumer drains the buffer and then observes ErrClosed.
func (c *core[T]) dropSender() {
	c.mu.Lock()
	c.senders--
	last := c.senders == 0
	if last {
		c.wakeRecvLocked()
	}
	c.mu.Unlock()
	if last {
		c.log.Debug().Str("channel", c.id).Msg("all senders closed")
	}
}

// dropReceiver closes the channel for sends. Buffered messages are discarded
// and every waiting producer is woken to observe the rejection.
func (c *core[T]) dropReceiver() {
	c.mu.Lock()
	c.recvGone = true
	for {
		if _, ok := c.buf.Pop(); !ok {
			break
		}
	}
	c.col.SetOccupancy(c.id, 0)
	for _, w := range c.sendq {
		w.signal()
	}
	c.sendq = nil
	c.mu.Unlock()
	c.log.Debug().Str("channel", c.id).Msg("receiver closed")
}

func (c *core[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

func (c *core[T]) capacity() int {
	return c.buf.Cap()
}

func (c *core[T]) closedForSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recvGone
}

func (c *core[T]) closedForRecv() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.senders == 0 && c.buf.Len() == 0
}
