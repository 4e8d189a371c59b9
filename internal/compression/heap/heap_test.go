package heap

import (
	"math/rand"
	"sort"
	"testing"
)

func greater(a, b int) bool { return a > b }

func checkInvariant[T any](t *testing.T, h *Heap[T]) {
	t.Helper()
	for i := 1; i < len(h.items); i++ {
		p := (i - 1) / 2
		if h.outranks(h.items[i], h.items[p]) {
			t.Fatalf("item %d outranks its parent %d: %v", i, p, h.items)
		}
	}
}

func TestEmptyAndSingle(t *testing.T) {
	h := New[int](nil, greater)
	if _, ok := h.RemoveMax(); ok {
		t.Fatal("RemoveMax on empty heap reported an item")
	}
	if _, ok := h.Peek(); ok {
		t.Fatal("Peek on empty heap reported an item")
	}
	h.siftDown(0)
	h.siftUp(0)

	h = New([]int{42}, greater)
	h.siftDown(0)
	h.siftUp(0)
	if v, ok := h.RemoveMax(); !ok || v != 42 {
		t.Fatalf("RemoveMax = %d, %v", v, ok)
	}
	if h.Len() != 0 {
		t.Fatalf("Len = %d after draining", h.Len())
	}

	h.Insert(7)
	if v, ok := h.Peek(); !ok || v != 7 {
		t.Fatalf("Peek = %d, %v", v, ok)
	}
}

func TestBuildAndDrain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{2, 3, 10, 257, 1000} {
		items := make([]int, n)
		for i := range items {
			items[i] = rng.Intn(50)
		}
		want := append([]int(nil), items...)
		sort.Sort(sort.Reverse(sort.IntSlice(want)))

		h := New(items, greater)
		checkInvariant(t, h)
		for i, w := range want {
			got, ok := h.RemoveMax()
			if !ok || got != w {
				t.Fatalf("n=%d: pop %d = %d, %v; want %d", n, i, got, ok, w)
			}
			checkInvariant(t, h)
		}
	}
}

func TestRandomOperationsKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	h := New[int](nil, greater)
	for i := 0; i < 5000; i++ {
		if rng.Intn(3) == 0 {
			h.RemoveMax()
		} else {
			h.Insert(rng.Intn(1000))
		}
		checkInvariant(t, h)
	}
}

func TestInvertedOrderingPopsSmallestFirst(t *testing.T) {
	type weighted struct {
		name string
		freq uint64
	}
	h := New([]weighted{{"c", 30}, {"a", 5}, {"d", 40}, {"b", 12}}, func(a, b weighted) bool {
		return a.freq < b.freq
	})
	var order string
	for h.Len() > 0 {
		w, _ := h.RemoveMax()
		order += w.name
	}
	if order != "abcd" {
		t.Fatalf("pop order = %q, want %q", order, "abcd")
	}
}
