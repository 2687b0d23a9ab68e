package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("expected two hashes of the same input to differ")
	}
	if a == "correct horse" {
		t.Fatal("hash must not equal plaintext")
	}
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, _ := h.Hash("s3cretpass")

	if !h.Verify("s3cretpass", hash) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("wrongpass", hash) {
		t.Fatal("expected wrong password to fail")
	}
	if h.Verify("s3cretpass", "not-a-bcrypt-hash") {
		t.Fatal("expected garbage hash to fail")
	}
}

func TestNewHasher_DefaultCost(t *testing.T) {
	h := NewHasher(0)
	if h.cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, h.cost)
	}
	hash, _ := h.Hash("password1")
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != DefaultCost {
		t.Fatalf("expected stored cost %d, got %d (%v)", DefaultCost, cost, err)
	}
}
