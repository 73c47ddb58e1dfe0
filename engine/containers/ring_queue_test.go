package containers

import (
	"errors"
	"testing"
)

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	if v, _ := rq.Dequeue(); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	if err := rq.Enqueue(4); err != nil {
		t.Fatalf("Enqueue after Dequeue: %v", err)
	}
	if v, _ := rq.Peek(); v != 2 {
		t.Errorf("expected 2 at the front, got %d", v)
	}

	var got []int
	for !rq.IsEmpty() {
		v, _ := rq.Dequeue()
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 4 {
		t.Errorf("unexpected order %v", got)
	}
	if rq.Len() != 0 {
		t.Errorf("expected an empty queue, got %d", rq.Len())
	}
}
