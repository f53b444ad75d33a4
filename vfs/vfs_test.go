package vfs

import "testing"

func TestAddGetDel(t *testing.T) {
	v := New()
	x := v.NewNode("x", TypeDir)
	if _, err := v.Add(v.Root(), x); err != nil {
		t.Fatal(err)
	}

	got, err := v.Get(v.Root(), []string{"x"})
	if err != nil || got != x {
		t.Fatalf("Get = %v, %v, want %v", got, err, x)
	}

	if err := v.Del(x); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Get(v.Root(), []string{"x"}); err == nil {
		t.Fatal("expected not-found after Del")
	}
}

func TestDelRejectedWithRefs(t *testing.T) {
	v := New()
	x := v.NewNode("x", TypeFile)
	v.Add(v.Root(), x)
	v.Ref(x)

	if err := v.Del(x); err == nil {
		t.Fatal("expected Del to be rejected while refs > 0")
	}
}

func TestMountOverlay(t *testing.T) {
	v := New()
	x := v.NewNode("x", TypeDir)
	v.Add(v.Root(), x)

	y := v.NewNode("y", TypeDir)
	v.Add(v.Root(), y)
	a := v.NewNode("a", TypeFile)
	v.Add(y, a)

	if _, err := v.Mount(x, y, 99); err != nil {
		t.Fatal(err)
	}

	got, err := v.Get(v.Root(), []string{"x", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("mounted lookup should resolve to /y/a's node, got %v want %v", got, a)
	}

	if err := v.Umount(x); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Get(v.Root(), []string{"x", "a"}); err == nil {
		t.Fatal("expected lookup to fail after umount")
	}
}

func TestFDTableDupSharesCursor(t *testing.T) {
	v := New()
	f := v.NewNode("f", TypeFile)
	v.Add(v.Root(), f)

	fds := NewFDTable()
	a, err := fds.Open(v, f, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := fds.Dup(v, a)
	if err != nil {
		t.Fatal(err)
	}

	fds.Seek(a, 42)
	off, err := fds.Tell(b)
	if err != nil || off != 42 {
		t.Fatalf("dup'd fd should share cursor: off=%d err=%v", off, err)
	}

	nodeA, _, _ := fds.Get(a)
	nodeB, _, _ := fds.Get(b)
	if nodeA != nodeB {
		t.Fatal("dup'd fd should reference the same node")
	}
}

func TestFDTableExhaustion(t *testing.T) {
	v := New()
	f := v.NewNode("f", TypeFile)
	v.Add(v.Root(), f)
	fds := NewFDTable()

	for i := 0; i < FDTableMax; i++ {
		if _, err := fds.Open(v, f, false); err != nil {
			t.Fatalf("Open %d: %v", i, err)
		}
	}
	if _, err := fds.Open(v, f, false); err == nil {
		t.Fatal("expected fd table exhaustion error")
	}
}

func TestRefsAccounting(t *testing.T) {
	v := New()
	f := v.NewNode("f", TypeFile)
	v.Add(v.Root(), f) // +1 on the root, which now has one child; f itself has none

	fds := NewFDTable()
	fd, _ := fds.Open(v, f, false) // +1 for the open fd

	refs, _ := v.Refs(f)
	if refs != 1 {
		t.Fatalf("refs = %d, want 1", refs)
	}

	fds.Close(v, fd)
	refs, _ = v.Refs(f)
	if refs != 0 {
		t.Fatalf("refs after close = %d, want 0", refs)
	}
}
