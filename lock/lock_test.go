package lock

import "testing"

func TestNewSlotExhaustion(t *testing.T) {
	tbl := New()
	for i := 0; i < cap_; i++ {
		if _, err := tbl.NewSlot(); err != nil {
			t.Fatalf("NewSlot %d: unexpected error %v", i, err)
		}
	}
	if _, err := tbl.NewSlot(); err == nil {
		t.Fatal("expected LOCK_MAX exhaustion error")
	}
}

func TestLockUnlock(t *testing.T) {
	tbl := New()
	slot, err := tbl.NewSlot()
	if err != nil {
		t.Fatal(err)
	}

	ok, tok1, err := tbl.Lock(slot)
	if err != nil || !ok {
		t.Fatalf("first lock should succeed: ok=%v err=%v", ok, err)
	}

	ok, tok2, err := tbl.Lock(slot)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("second lock should report contention")
	}
	if tok1 != tok2 {
		t.Fatal("token should be stable across calls to the same slot")
	}

	tok3, err := tbl.Unlock(slot)
	if err != nil {
		t.Fatal(err)
	}
	if tok3 != tok1 {
		t.Fatal("unlock token should match lock token")
	}

	ok, _, err = tbl.Lock(slot)
	if err != nil || !ok {
		t.Fatalf("lock after unlock should succeed: ok=%v err=%v", ok, err)
	}
}

func TestFreeThenBadSlot(t *testing.T) {
	tbl := New()
	slot, _ := tbl.NewSlot()
	if err := tbl.Free(slot); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tbl.Lock(slot); err == nil {
		t.Fatal("locking a freed slot should error")
	}
}

func TestBadSlotIndex(t *testing.T) {
	tbl := New()
	if _, _, err := tbl.Lock(-1); err == nil {
		t.Fatal("expected error for negative slot")
	}
	if _, _, err := tbl.Lock(999); err == nil {
		t.Fatal("expected error for out-of-range slot")
	}
}
