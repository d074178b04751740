package mpsc_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/onsails/mpsc"
)

func ExampleNewChannel() {
	// 1. Create a capacity-3 channel and hand the Sender to a producer.
	tx, rx := mpsc.NewChannel[string](3)

	go func() {
		defer tx.Close() // closing the last Sender ends the stream
		for _, word := range []string{"to", "the", "point"} {
			_ = tx.BlockingSend(word)
		}
	}()

	// 2. Drain until the channel reports closed-and-empty.
	for {
		word, ok := rx.BlockingRecv()
		if !ok {
			return
		}
		fmt.Println(word)
	}

	// Output:
	// to
	// the
	// point
}

func ExampleReceiver_OptimisticBlockingRecv() {
	tx, rx := mpsc.NewChannel[int](4)

	for i := 1; i <= 3; i++ {
		_ = tx.TrySend(i * 10)
	}
	tx.Close()

	// Every value is already buffered, so the fast path never blocks.
	for {
		v, ok := rx.OptimisticBlockingRecv()
		if !ok {
			fmt.Println("closed")
			return
		}
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// closed
}

func ExampleSender_OptimisticBlockingSend() {
	tx, rx := mpsc.NewChannel[string](1)
	rx.Close() // the consumer is gone

	err := tx.OptimisticBlockingSend("undeliverable")
	var rejected *mpsc.SendError[string]
	if errors.As(err, &rejected) {
		fmt.Println("rejected:", rejected.Value)
	}

	// Output:
	// rejected: undeliverable
}

func ExampleSender_Send() {
	tx, rx := mpsc.NewChannel[int](1)
	ctx := context.Background()

	go func() {
		defer tx.Close()
		for i := 0; i < 3; i++ {
			// Send suspends cooperatively while the buffer is full.
			if err := tx.Send(ctx, i); err != nil {
				return
			}
		}
	}()

	for {
		v, err := rx.Recv(ctx)
		if err != nil {
			return
		}
		fmt.Println(v)
	}

	// Output:
	// 0
	// 1
	// 2
}
