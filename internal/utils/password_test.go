package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("changeme", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty hash")
	}
	if hash == "changeme" {
		t.Fatal("HashPassword returned the plaintext")
	}
}

func TestVerifyPassword_Correct(t *testing.T) {
	hash, err := HashPassword("changeme", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !VerifyPassword(hash, "changeme") {
		t.Fatal("correct password was rejected")
	}
}

func TestVerifyPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("changeme", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword(hash, "wrongpassword") {
		t.Fatal("wrong password was accepted")
	}
}
