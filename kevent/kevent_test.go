package kevent

import "testing"

func TestPushPopFIFO(t *testing.T) {
	q := New()
	q.Push(EventKeyPress, []byte("a"))
	q.Push(EventUserInterrupt, []byte("b"))

	e, ok := q.Pop()
	if !ok || e.Type != EventKeyPress || string(e.Data) != "a" {
		t.Fatalf("first pop = %+v, %v", e, ok)
	}
	e, ok = q.Pop()
	if !ok || e.Type != EventUserInterrupt || string(e.Data) != "b" {
		t.Fatalf("second pop = %+v, %v", e, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestPushOverflowDropsOldest(t *testing.T) {
	q := New()
	for i := 0; i < QueueMax+5; i++ {
		q.Push(EventKeyPress, []byte{byte(i)})
	}
	if q.Len() != QueueMax {
		t.Fatalf("Len = %d, want %d", q.Len(), QueueMax)
	}
	e, _ := q.Pop()
	if e.Data[0] != 5 {
		t.Fatalf("expected oldest surviving event to be index 5, got %d", e.Data[0])
	}
}

func TestUsintRegistry(t *testing.T) {
	u := NewUsint()
	u.Register(3, 42)

	pid, err := u.PidFor(3)
	if err != nil || pid != 42 {
		t.Fatalf("PidFor = %d, %v", pid, err)
	}

	u.Unregister(3)
	if _, err := u.PidFor(3); err == nil {
		t.Fatal("expected error after Unregister")
	}
}
