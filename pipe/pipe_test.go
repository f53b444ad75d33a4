package pipe

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	b := New(16)
	n, status := b.Write([]byte("abc"))
	if n != 3 || status != StatusOK {
		t.Fatalf("Write = %d, %v", n, status)
	}

	out := make([]byte, 3)
	n, status = b.Read(out)
	if n != 3 || status != StatusOK || string(out) != "abc" {
		t.Fatalf("Read = %d, %v, %q", n, status, out)
	}
}

func TestEOFAfterPeerCloses(t *testing.T) {
	b := New(4)
	b.Write([]byte("abc"))
	b.Unref() // writer closes, one end remains

	out := make([]byte, 3)
	n, status := b.Read(out)
	if n != 3 || status != StatusOK {
		t.Fatalf("expected to drain buffered bytes first, got %d %v", n, status)
	}

	n, status = b.Read(out)
	if n != 0 || status != StatusEOF {
		t.Fatalf("expected EOF once drained with no peer, got %d %v", n, status)
	}
}

func TestFullBufferRetryThenEOF(t *testing.T) {
	b := New(2)
	b.Write([]byte("ab"))

	n, status := b.Write([]byte("cd"))
	if n != 0 || status != StatusRetry {
		t.Fatalf("full buffer with peer alive should retry, got %d %v", n, status)
	}

	b.Unref() // reader goes away
	n, status = b.Write([]byte("cd"))
	if n != 0 || status != StatusEOF {
		t.Fatalf("full buffer with no peer should EOF, got %d %v", n, status)
	}
}
