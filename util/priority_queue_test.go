package util

import (
	"testing"
)

func TestPriorityQueueOrder(t *testing.T) {
	pq := NewPriorityQueue[string, float64](4)
	pq.Enqueue("c", 3)
	pq.Enqueue("a", 1)
	pq.Enqueue("b", 2)

	want := []string{"a", "b", "c"}
	for i := 0; i < len(want); i++ {
		item, ok := pq.Dequeue()
		if !ok {
			t.Fatalf("queue empty after %v items; want %v", i, len(want))
		}
		if item != want[i] {
			t.Errorf("Dequeue %v = %v; want %v", i, item, want[i])
		}
	}
	if _, ok := pq.Dequeue(); ok {
		t.Errorf("Dequeue on empty queue reported ok")
	}
}

func TestPriorityQueueFIFOTies(t *testing.T) {
	pq := NewPriorityQueue[string, float64](8)
	pq.Enqueue("first", 1)
	pq.Enqueue("second", 1)
	pq.Enqueue("third", 1)
	pq.Enqueue("early", 0)

	want := []string{"early", "first", "second", "third"}
	for i := 0; i < len(want); i++ {
		item, _ := pq.Dequeue()
		if item != want[i] {
			t.Errorf("Dequeue %v = %v; want %v", i, item, want[i])
		}
	}
}

func TestPriorityQueueLen(t *testing.T) {
	pq := NewPriorityQueue[int, int](2)
	if pq.Len() != 0 {
		t.Errorf("Len = %v; want 0", pq.Len())
	}
	pq.Enqueue(1, 1)
	pq.Enqueue(2, 2)
	if pq.Len() != 2 {
		t.Errorf("Len = %v; want 2", pq.Len())
	}
	pq.Dequeue()
	if pq.Len() != 1 {
		t.Errorf("Len = %v; want 1", pq.Len())
	}
}
