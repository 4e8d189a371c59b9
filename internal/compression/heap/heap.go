// Package heap provides an array-backed binary max-heap whose ordering is
// supplied by the caller.
package heap

// Heap keeps the element that outranks all others at the root. For every
// non-root index i with parent p, items[i] never outranks items[p].
type Heap[T any] struct {
	items    []T
	outranks func(a, b T) bool
}

// New builds a heap from items in O(n), taking ownership of the slice.
// outranks(a, b) reports whether a belongs closer to the root than b.
func New[T any](items []T, outranks func(a, b T) bool) *Heap[T] {
	h := &Heap[T]{items: items, outranks: outranks}
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
	return h
}

func (h *Heap[T]) Len() int {
	return len(h.items)
}

func (h *Heap[T]) Insert(item T) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Peek returns the root without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// RemoveMax removes and returns the root. ok is false on an empty heap.
func (h *Heap[T]) RemoveMax() (item T, ok bool) {
	n := len(h.items)
	if n == 0 {
		return item, false
	}
	item = h.items[0]
	h.items[0] = h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	h.siftDown(0)
	return item, true
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && h.outranks(h.items[right], h.items[left]) {
			child = right
		}
		if !h.outranks(h.items[child], h.items[i]) {
			return
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.outranks(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}
