package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestPasswords() *PasswordService {
	// bcrypt.MinCost keeps each hash microseconds instead of ~250ms.
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := newTestPasswords()

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with original plaintext error = %v, want nil", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswords()

	hash, err := ps.Hash("right")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "wrong"); err == nil {
		t.Error("Verify() with wrong plaintext should error")
	}
}

func TestHash_Salted(t *testing.T) {
	ps := newTestPasswords()

	// Two hashes of the same plaintext must differ — bcrypt salts each one.
	h1, err := ps.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same plaintext are identical, want salted output")
	}

	// Both must still verify.
	if err := ps.Verify(h1, "same password"); err != nil {
		t.Errorf("Verify(h1) error = %v", err)
	}
	if err := ps.Verify(h2, "same password"); err != nil {
		t.Errorf("Verify(h2) error = %v", err)
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswords()

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}
