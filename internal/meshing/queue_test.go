package meshing

import (
	"sync"
	"testing"
)

func popAll(q *Queue) []Request {
	var out []Request
	for {
		r, ok := q.PopFront()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func TestQueueCascadeOrder(t *testing.T) {
	q := NewQueue(false)
	q.PushBack(0, 0, true)
	q.PushBack(7, 7, false)

	want := []Request{
		{X: 0, Z: 0, Cascade: true},
		{X: 7, Z: 7},
		{X: 1, Z: 0},
		{X: -1, Z: 0},
		{X: 0, Z: 1},
		{X: 0, Z: -1},
	}
	got := popAll(q)
	if len(got) != len(want) {
		t.Fatalf("got %d requests %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestQueueCascadeDoesNotRecurse(t *testing.T) {
	q := NewQueue(false)
	q.PushBack(3, -2, true)
	if got := len(popAll(q)); got != 5 {
		t.Fatalf("got %d requests, want 5", got)
	}
}

func TestQueueDedup(t *testing.T) {
	tests := []struct {
		name  string
		dedup bool
		want  []Request
	}{
		{
			name:  "merged",
			dedup: true,
			want:  []Request{{X: 1, Z: 1, Cascade: true}, {X: 2, Z: 1}, {X: 0, Z: 1}, {X: 1, Z: 2}, {X: 1, Z: 0}},
		},
		{
			name:  "kept",
			dedup: false,
			want:  []Request{{X: 1, Z: 1}, {X: 1, Z: 1, Cascade: true}, {X: 2, Z: 1}, {X: 0, Z: 1}, {X: 1, Z: 2}, {X: 1, Z: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue(tt.dedup)
			q.PushBack(1, 1, false)
			q.PushBack(1, 1, true)
			got := popAll(q)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("request %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQueueDedupAllowsRepushAfterPop(t *testing.T) {
	q := NewQueue(true)
	q.PushBack(4, 4, false)
	if _, ok := q.PopFront(); !ok {
		t.Fatal("expected a request")
	}
	q.PushBack(4, 4, false)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
}

func TestQueueEmptyAndClear(t *testing.T) {
	q := NewQueue(true)
	if _, ok := q.PopFront(); ok {
		t.Fatal("pop from empty queue reported ok")
	}
	q.PushBack(1, 2, true)
	q.PushBack(3, 4, false)
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", q.Len())
	}
	q.PushBack(1, 2, false)
	if q.Len() != 1 {
		t.Fatalf("dedup state survived Clear: Len() = %d", q.Len())
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue(false)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.PushBack(int32(g), int32(i), false)
			}
		}(g)
	}
	wg.Wait()
	if q.Len() != 800 {
		t.Fatalf("Len() = %d, want 800", q.Len())
	}
}
