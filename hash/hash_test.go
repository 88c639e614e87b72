package hash

import "testing"

func TestXXHash_HashKey_Deterministic(t *testing.T) {
	t.Parallel()

	h := NewXXHash()
	a := h.HashKey([]byte("user:42"))
	b := h.HashKey([]byte("user:42"))
	if a != b {
		t.Fatalf("HashKey not deterministic: %d != %d", a, b)
	}

	c := h.HashKey([]byte("user:43"))
	if a == c {
		t.Fatalf("HashKey collided on distinct keys: both %d", a)
	}
}

func TestXXHash_HashPair_Deterministic(t *testing.T) {
	t.Parallel()

	h := NewXXHash()
	subject := uint64(12345)
	id := []byte("node-a")

	w1 := h.HashPair(subject, id)
	w2 := h.HashPair(subject, id)
	if w1 != w2 {
		t.Fatalf("HashPair not deterministic: %d != %d", w1, w2)
	}
}

func TestXXHash_HashPair_SensitiveToEitherOperand(t *testing.T) {
	t.Parallel()

	h := NewXXHash()
	base := h.HashPair(1, []byte("node-a"))

	if w := h.HashPair(2, []byte("node-a")); w == base {
		t.Fatal("HashPair did not change when subject changed")
	}
	if w := h.HashPair(1, []byte("node-b")); w == base {
		t.Fatal("HashPair did not change when nodeID changed")
	}
}

func TestIdentityWeight(t *testing.T) {
	t.Parallel()

	if got := IdentityWeight(7, 99); got != 7 {
		t.Fatalf("IdentityWeight(7, 99) = %d, want 7", got)
	}
}
