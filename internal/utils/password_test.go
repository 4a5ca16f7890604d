package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("hash = %q, expected a bcrypt 2a hash", hash)
	}
	if !CheckPassword("secret1", hash) {
		t.Error("CheckPassword should accept the hashed password")
	}

	again, _ := HashPassword("secret1")
	if again == hash {
		t.Error("hashes of the same password should differ by salt")
	}
}

func TestHashPassword_BcryptByteLimit(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", 72)); err != nil {
		t.Errorf("72-byte password error = %v", err)
	}

	_, err := HashPassword(strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("73-byte password error = %v, expected ErrPasswordTooLong", err)
	}

	// Six characters, eighteen bytes: fine. Twenty-five characters is 75 bytes.
	if _, err := HashPassword(strings.Repeat("密", 6)); err != nil {
		t.Errorf("short multi-byte password error = %v", err)
	}
	if _, err := HashPassword(strings.Repeat("密", 25)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("75-byte multi-byte password error = %v, expected ErrPasswordTooLong", err)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, _ := HashPassword("Board-2024")

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{"matching password", "Board-2024", hash, true},
		{"case differs", "board-2024", hash, false},
		{"empty password", "", hash, false},
		{"user without a password hash", "Board-2024", "", false},
		{"legacy plaintext column", "Board-2024", "Board-2024", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.expected {
				t.Errorf("CheckPassword(%q) = %v, expected %v", tt.password, got, tt.expected)
			}
		})
	}
}
