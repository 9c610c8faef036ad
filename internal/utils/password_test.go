package utils

import "testing"

func TestHashPasswordRequiresMinimumLength(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Fatalf("expected password check to succeed")
	}
	if CheckPassword(hash, "wrong password!") {
		t.Fatalf("expected wrong password check to fail")
	}
}
