// Package mpsc provides a bounded multi-producer, single-consumer channel
// together with blocking adapters that bridge it to plain goroutines.
//
// The channel exposes two flavors of every operation: an immediate attempt
// (TrySend, TryRecv) and a suspending, context-aware one (Send, Recv) meant
// for cooperative callers. On top of those, the blocking adapters
// (BlockingSend, BlockingRecv and their Optimistic variants) let code that
// is happy to block a whole goroutine exchange values with the channel
// without busy-waiting and without touching any scheduler: the optimistic
// variants take a zero-latency fast path whenever the buffer has data or
// space, and otherwise park the caller until the channel resolves.
//
// Below is an example of a producer/consumer pair exchanging integers over a
// capacity-10 channel:
//
//	package yourqueue
//
//	import (
//		"errors"
//
//		"github.com/rs/zerolog"
//
//		"github.com/onsails/mpsc"
//	)
//
//	// Run sends ten integers from one goroutine and drains them from another.
//	func Run(log zerolog.Logger) {
//		tx, rx := mpsc.NewChannel[int](10)
//
//		go func(tx *mpsc.Sender[int]) {
//			defer tx.Close() // closing the last Sender ends the stream
//			for i := 0; i < 10; i++ {
//				if err := tx.OptimisticBlockingSend(i); err != nil {
//					var rejected *mpsc.SendError[int]
//					if errors.As(err, &rejected) {
//						log.Error().Int("value", rejected.Value).Msg("consumer gone")
//					}
//					return
//				}
//			}
//		}(tx)
//
//		for {
//			v, ok := rx.OptimisticBlockingRecv()
//			if !ok { // channel closed and drained
//				return
//			}
//			log.Info().Int("value", v).Msg("received")
//		}
//	}
//
// Messages sent sequentially through one Sender are observed by the consumer
// in exactly that order; order across distinct Senders follows the channel's
// FIFO arbitration. A send against a channel whose Receiver is gone fails
// with a *SendError carrying the rejected message back, so no data is
// silently lost.
package mpsc
