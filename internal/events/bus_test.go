package events

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestOnEmitOff(t *testing.T) {
	bus := NewBus()
	var got []string
	first := bus.On("auth-changed", func(p any) { got = append(got, "first:"+p.(string)) })
	bus.On("auth-changed", func(p any) { got = append(got, "second:"+p.(string)) })
	bus.On("other", func(any) { t.Fatal("wrong event") })

	bus.Emit("auth-changed", "in")
	bus.Off(first)
	bus.Emit("auth-changed", "out")
	bus.Off(first)

	want := []string{"first:in", "second:in", "second:out"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestHandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewBus()
	calls := 0
	var sub Subscription
	sub = bus.On("tick", func(any) {
		calls++
		bus.Off(sub)
	})
	bus.Emit("tick", nil)
	bus.Emit("tick", nil)
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestConcurrentUse(t *testing.T) {
	bus := NewBus()
	var n atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := bus.On("e", func(any) { n.Add(1) })
			bus.Emit("e", nil)
			bus.Off(sub)
		}()
	}
	wg.Wait()
	if n.Load() < 8 {
		t.Fatalf("n=%d", n.Load())
	}
}
