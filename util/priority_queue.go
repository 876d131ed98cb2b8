package util

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

// PriorityQueue is a min-heap of items ordered by priority. Items enqueued
// with equal priority are dequeued in insertion order, so traversals that
// rely on it are deterministic across runs.
type PriorityQueue[T any, P constraints.Ordered] struct {
	heap  _PQHeap[T, P]
	count int64
}

func NewPriorityQueue[T any, P constraints.Ordered](capacity int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		heap: make(_PQHeap[T, P], 0, capacity),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.count += 1
	heap.Push(&self.heap, _PQEntry[T, P]{
		item:     item,
		priority: priority,
		order:    self.count,
	})
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if len(self.heap) == 0 {
		var empty T
		return empty, false
	}
	entry := heap.Pop(&self.heap).(_PQEntry[T, P])
	return entry.item, true
}

func (self *PriorityQueue[T, P]) Len() int {
	return len(self.heap)
}

//*******************************************
// heap internals
//*******************************************

type _PQEntry[T any, P constraints.Ordered] struct {
	item     T
	priority P
	order    int64
}

type _PQHeap[T any, P constraints.Ordered] []_PQEntry[T, P]

func (self _PQHeap[T, P]) Len() int { return len(self) }

func (self _PQHeap[T, P]) Less(i, j int) bool {
	if self[i].priority != self[j].priority {
		return self[i].priority < self[j].priority
	}
	return self[i].order < self[j].order
}

func (self _PQHeap[T, P]) Swap(i, j int) {
	self[i], self[j] = self[j], self[i]
}

func (self *_PQHeap[T, P]) Push(x any) {
	*self = append(*self, x.(_PQEntry[T, P]))
}

func (self *_PQHeap[T, P]) Pop() any {
	old := *self
	n := len(old)
	entry := old[n-1]
	*self = old[:n-1]
	return entry
}
