package monitor

import "sync"

// Item is one unit of captured device data on its way to the display.
type Item struct {
	Payload []byte
	Stamp   string // empty unless timestamping is enabled
}

// Queue is the unbounded FIFO between the reader and the writer. Put
// never blocks the producer; Get blocks the consumer until an item is
// available. Display order therefore always equals arrival order, even
// when the display is momentarily stalled.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Item
	closed bool
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends an item. Puts after Close are dropped.
func (q *Queue) Put(it Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, it)
	q.cond.Signal()
}

// Get removes the oldest item, blocking until one exists. The second
// return value is false once the queue is closed and drained.
func (q *Queue) Get() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return Item{}, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

// Close unblocks the consumer once remaining items are drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
