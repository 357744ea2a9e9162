package router

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueue_BasicSendReceive(t *testing.T) {
	q := NewQueue[int](10)

	for i := 0; i < 5; i++ {
		if err := q.TrySend(i); err != nil {
			t.Fatalf("TrySend(%d) error = %v", i, err)
		}
	}

	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}

	for i := 0; i < 5; i++ {
		val, ok := q.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestQueue_FullDropsWithoutBlocking(t *testing.T) {
	q := NewQueue[int](3)

	for i := 0; i < 3; i++ {
		if err := q.TrySend(i); err != nil {
			t.Fatalf("TrySend(%d) error = %v", i, err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- q.TrySend(99) }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("TrySend on full queue error = %v, want %v", err, ErrQueueFull)
		}
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full queue")
	}

	stats := q.Stats()
	if stats.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", stats.Dropped)
	}
	if stats.Capacity != 3 || stats.Count != 3 {
		t.Errorf("stats = %+v, want capacity 3 count 3", stats)
	}

	// The dropped item never shows up.
	for i := 0; i < 3; i++ {
		val, _ := q.TryReceive()
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}
	if _, ok := q.TryReceive(); ok {
		t.Error("TryReceive returned an item after draining")
	}
}

func TestQueue_BlockingReceive(t *testing.T) {
	q := NewQueue[int](10)

	received := make(chan int, 1)

	go func() {
		val, ok := q.Receive()
		if ok {
			received <- val
		}
	}()

	// Give receiver time to start waiting
	time.Sleep(10 * time.Millisecond)

	if err := q.TrySend(42); err != nil {
		t.Fatalf("TrySend error = %v", err)
	}

	select {
	case val := <-received:
		if val != 42 {
			t.Errorf("received %d, want 42", val)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for blocked receive")
	}
}

func TestQueue_Close(t *testing.T) {
	q := NewQueue[int](10)

	_ = q.TrySend(1)
	_ = q.TrySend(2)

	q.Close()
	q.Close()

	if err := q.TrySend(3); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("TrySend after Close error = %v, want %v", err, ErrQueueClosed)
	}

	// Pending items survive the close
	val, ok := q.Receive()
	if !ok || val != 1 {
		t.Errorf("Receive() = %d, %v; want 1, true", val, ok)
	}
	val, ok = q.Receive()
	if !ok || val != 2 {
		t.Errorf("Receive() = %d, %v; want 2, true", val, ok)
	}

	if _, ok := q.Receive(); ok {
		t.Error("Receive should return false when empty and closed")
	}
}

func TestQueue_CloseUnblocksReceive(t *testing.T) {
	q := NewQueue[int](10)

	done := make(chan bool, 1)

	go func() {
		_, ok := q.Receive()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)

	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Receive should return false when closed and empty")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock Receive")
	}
}

func TestQueue_ConcurrentSendReceivePreservesOrder(t *testing.T) {
	q := NewQueue[int](16)
	const numItems = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numItems; {
			if err := q.TrySend(i); err != nil {
				// Full: let the receiver catch up and retry the same item.
				time.Sleep(time.Microsecond)
				continue
			}
			i++
		}
		q.Close()
	}()

	received := make([]int, 0, numItems)
	for {
		val, ok := q.Receive()
		if !ok {
			break
		}
		received = append(received, val)
	}
	wg.Wait()

	if len(received) != numItems {
		t.Fatalf("received %d items, want %d", len(received), numItems)
	}
	for i, val := range received {
		if val != i {
			t.Fatalf("received[%d] = %d, want %d", i, val, i)
		}
	}
}

func TestQueue_WrapAround(t *testing.T) {
	q := NewQueue[int](5)

	_ = q.TrySend(1)
	_ = q.TrySend(2)
	_ = q.TrySend(3)

	q.TryReceive() // removes 1
	q.TryReceive() // removes 2

	// These wrap past the end of the ring
	for _, v := range []int{4, 5, 6, 7} {
		if err := q.TrySend(v); err != nil {
			t.Fatalf("TrySend(%d) error = %v", v, err)
		}
	}
	if err := q.TrySend(8); !errors.Is(err, ErrQueueFull) {
		t.Errorf("TrySend(8) error = %v, want %v", err, ErrQueueFull)
	}

	for _, want := range []int{3, 4, 5, 6, 7} {
		got, ok := q.TryReceive()
		if !ok {
			t.Fatalf("TryReceive failed, expected %d", want)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestQueue_Stats(t *testing.T) {
	q := NewQueue[int](10)

	stats := q.Stats()
	if stats.Count != 0 || stats.Capacity != 10 || stats.TotalReceived != 0 || stats.TotalSent != 0 {
		t.Errorf("initial stats incorrect: %+v", stats)
	}

	_ = q.TrySend(1)
	_ = q.TrySend(2)
	_ = q.TrySend(3)

	stats = q.Stats()
	if stats.Count != 3 || stats.TotalReceived != 3 {
		t.Errorf("stats after sends: %+v", stats)
	}

	q.TryReceive()
	q.TryReceive()

	stats = q.Stats()
	if stats.Count != 1 || stats.TotalSent != 2 {
		t.Errorf("stats after receives: %+v", stats)
	}
}

func TestNewQueue_MinCapacity(t *testing.T) {
	q := NewQueue[int](0)
	if q.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1 for capacity 0", q.Cap())
	}

	q = NewQueue[int](-5)
	if q.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1 for negative capacity", q.Cap())
	}
}
