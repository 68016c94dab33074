package monitor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 100, 5000} {
		q := NewQueue()
		for i := 0; i < n; i++ {
			q.Put(Item{Payload: []byte(fmt.Sprintf("item-%d", i))})
		}
		q.Close()

		for i := 0; i < n; i++ {
			it, ok := q.Get()
			require.True(t, ok, "n=%d i=%d", n, i)
			assert.Equal(t, fmt.Sprintf("item-%d", i), string(it.Payload))
		}
		_, ok := q.Get()
		assert.False(t, ok, "n=%d", n)
	}
}

func TestQueueGetBlocksUntilPut(t *testing.T) {
	q := NewQueue()

	got := make(chan Item, 1)
	go func() {
		it, ok := q.Get()
		if ok {
			got <- it
		}
	}()

	select {
	case <-got:
		t.Fatal("Get returned before anything was put")
	case <-time.After(20 * time.Millisecond):
	}

	q.Put(Item{Payload: []byte("late")})

	select {
	case it := <-got:
		assert.Equal(t, "late", string(it.Payload))
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Get to unblock")
	}
}

func TestQueuePutNeverBlocksWithStalledConsumer(t *testing.T) {
	q := NewQueue()

	done := make(chan struct{})
	go func() {
		// Nobody consumes; 100k puts must still return promptly.
		for i := 0; i < 100000; i++ {
			q.Put(Item{Payload: []byte{byte(i)}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Put blocked with a stalled consumer")
	}
}

func TestQueueCloseUnblocksConsumer(t *testing.T) {
	q := NewQueue()

	closed := make(chan bool, 1)
	go func() {
		_, ok := q.Get()
		closed <- ok
	}()

	q.Close()

	select {
	case ok := <-closed:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Get to observe Close")
	}
}

func TestQueuePutAfterCloseIsDropped(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Put(Item{Payload: []byte("lost")})

	_, ok := q.Get()
	assert.False(t, ok)
}
