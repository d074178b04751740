package mpsc_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/onsails/mpsc"
	"github.com/onsails/mpsc/telemetry"
)

// countingCollector records telemetry events so tests can observe whether a
// code path parked the caller.
type countingCollector struct {
	sent     atomic.Int64
	received atomic.Int64
	rejected atomic.Int64
	parked   atomic.Int64
}

func (c *countingCollector) IncSent(string)           { c.sent.Add(1) }
func (c *countingCollector) IncReceived(string)       { c.received.Add(1) }
func (c *countingCollector) IncRejected(string)       { c.rejected.Add(1) }
func (c *countingCollector) IncParked(string, string) { c.parked.Add(1) }
func (c *countingCollector) SetOccupancy(string, int) {}

var _ telemetry.Collector = (*countingCollector)(nil)

func TestReceiver_OptimisticBlockingRecv(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](10)

	for i := 0; i < 10; i++ {
		require.NoError(t, tx.TrySend(i))
	}
	tx.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			v, ok := rx.OptimisticBlockingRecv()
			assert.True(t, ok)
			assert.Equal(t, i, v)
		}
		_, ok := rx.OptimisticBlockingRecv()
		assert.False(t, ok)
	}()
	<-done
}

func TestReceiver_BlockingRecv(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](10)

	for i := 0; i < 10; i++ {
		require.NoError(t, tx.TrySend(i))
	}
	tx.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			v, ok := rx.BlockingRecv()
			assert.True(t, ok)
			assert.Equal(t, i, v)
		}
		_, ok := rx.BlockingRecv()
		assert.False(t, ok)
	}()
	<-done
}

func TestReceiver_ClosureSentinelRepeatable(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](2)
	require.NoError(t, tx.TrySend(1))
	tx.Close()

	v, ok := rx.OptimisticBlockingRecv()
	require.True(t, ok)
	require.Equal(t, 1, v)

	for i := 0; i < 3; i++ {
		_, ok := rx.OptimisticBlockingRecv()
		assert.False(t, ok)
		_, ok = rx.BlockingRecv()
		assert.False(t, ok)
	}
}

func TestFastPathNeverParks(t *testing.T) {
	col := &countingCollector{}
	tx, rx := mpsc.NewChannel[int](2, mpsc.Params{ID: "fast", Collector: col})

	require.NoError(t, tx.OptimisticBlockingSend(1))
	require.NoError(t, tx.OptimisticBlockingSend(2))

	v, ok := rx.OptimisticBlockingRecv()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = rx.OptimisticBlockingRecv()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, int64(0), col.parked.Load(), "fast paths must not park")
	assert.Equal(t, int64(2), col.sent.Load())
	assert.Equal(t, int64(2), col.received.Load())
}

func TestSlowPathParks(t *testing.T) {
	col := &countingCollector{}
	tx, rx := mpsc.NewChannel[int](1, mpsc.Params{ID: "slow", Collector: col})

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = tx.TrySend(5)
		tx.Close()
	}()

	v, ok := rx.OptimisticBlockingRecv()
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.GreaterOrEqual(t, col.parked.Load(), int64(1), "empty channel must park the consumer")
}

func TestSender_OptimisticBlockingSend_FullFallback(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](1)
	require.NoError(t, tx.TrySend(1))

	var g errgroup.Group
	unblocked := make(chan struct{})
	g.Go(func() error {
		err := tx.OptimisticBlockingSend(2)
		close(unblocked)
		return err
	})

	select {
	case <-unblocked:
		t.Fatal("send into a full channel completed before the consumer drained")
	case <-time.After(30 * time.Millisecond):
	}

	v, ok := rx.BlockingRecv()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	require.NoError(t, g.Wait())
	v, ok = rx.BlockingRecv()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestSender_SendAfterClose_ReturnsValue(t *testing.T) {
	type payload struct {
		ID   int
		Name string
	}

	tx, rx := mpsc.NewChannel[payload](4)
	rx.Close()

	want := payload{ID: 7, Name: "lost?"}

	err := tx.BlockingSend(want)
	var sendErr *mpsc.SendError[payload]
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, want, sendErr.Value)
	assert.True(t, mpsc.IsClosed(err))

	err = tx.OptimisticBlockingSend(want)
	sendErr = nil
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, want, sendErr.Value)
}

func TestSender_BlockingSend_UnblockedByReceiverClose(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](1)
	require.NoError(t, tx.TrySend(1))

	var g errgroup.Group
	g.Go(func() error {
		return tx.BlockingSend(2)
	})

	time.Sleep(20 * time.Millisecond)
	rx.Close()

	err := g.Wait()
	var sendErr *mpsc.SendError[int]
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, 2, sendErr.Value)
}

func TestReceiver_BlockingRecv_UnblockedBySenderClose(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := rx.BlockingRecv()
		assert.False(t, ok)
	}()

	time.Sleep(20 * time.Millisecond)
	tx.Close()
	<-done
}

func TestEndToEnd_ProducerConsumer(t *testing.T) {
	tx, rx := mpsc.NewChannel[int](10)

	var g errgroup.Group
	g.Go(func() error {
		defer tx.Close()
		for i := 0; i < 100; i++ {
			if err := tx.OptimisticBlockingSend(i); err != nil {
				return err
			}
		}
		return nil
	})

	var got []int
	for {
		v, ok := rx.OptimisticBlockingRecv()
		if !ok {
			break
		}
		got = append(got, v)
	}

	require.NoError(t, g.Wait())
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestConcurrentProducers_PerSenderOrder(t *testing.T) {
	const (
		producers   = 4
		perProducer = 50
	)

	tx, rx := mpsc.NewChannel[[2]int](8)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		handle := tx.Clone()
		p := p
		g.Go(func() error {
			defer handle.Close()
			for i := 0; i < perProducer; i++ {
				if err := handle.OptimisticBlockingSend([2]int{p, i}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	tx.Close()

	seen := make(map[int]int, producers)
	total := 0
	for {
		v, ok := rx.BlockingRecv()
		if !ok {
			break
		}
		producer, seq := v[0], v[1]
		assert.Equal(t, seen[producer], seq, "messages from one sender must stay in order")
		seen[producer]++
		total++
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, producers*perProducer, total)
}
