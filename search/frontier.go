package search

import "container/heap"

// Frontier holds the nodes waiting to be expanded. The ordering policy of the
// frontier decides the search strategy. Stack and Queue ignore priority.
type Frontier[T any] interface {
	Push(item T, priority float64)
	Pop() T
	IsEmpty() bool
	Len() int
}

// Stack is a LIFO frontier.
type Stack[T any] struct {
	items []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) Push(item T, _ float64) {
	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		panic("pop from empty stack")
	}
	last := len(s.items) - 1
	item := s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	return item
}

func (s *Stack[T]) IsEmpty() bool { return len(s.items) == 0 }
func (s *Stack[T]) Len() int      { return len(s.items) }

// Queue is a FIFO frontier.
type Queue[T any] struct {
	items []T
	head  int
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Push(item T, _ float64) {
	q.items = append(q.items, item)
}

func (q *Queue[T]) Pop() T {
	if q.IsEmpty() {
		panic("pop from empty queue")
	}
	item := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append([]T(nil), q.items[q.head:]...)
		q.head = 0
	}
	return item
}

func (q *Queue[T]) IsEmpty() bool { return q.head == len(q.items) }
func (q *Queue[T]) Len() int      { return len(q.items) - q.head }

// PriorityQueue pops the item with the lowest priority. Equal priorities
// pop in insertion order.
type PriorityQueue[T any] struct {
	entries entryHeap[T]
	seq     uint64
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

func (pq *PriorityQueue[T]) Push(item T, priority float64) {
	heap.Push(&pq.entries, entry[T]{item: item, priority: priority, seq: pq.seq})
	pq.seq++
}

func (pq *PriorityQueue[T]) Pop() T {
	if pq.IsEmpty() {
		panic("pop from empty priority queue")
	}
	return heap.Pop(&pq.entries).(entry[T]).item
}

func (pq *PriorityQueue[T]) IsEmpty() bool { return len(pq.entries) == 0 }
func (pq *PriorityQueue[T]) Len() int      { return len(pq.entries) }

type entry[T any] struct {
	item     T
	priority float64
	seq      uint64
}

type entryHeap[T any] []entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(entry[T])) }

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = entry[T]{}
	*h = old[:n-1]
	return item
}
