package utils_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"schooladmin/internal/utils"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("hunter2hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("HashPassword() returned the plain value")
	}
	if !utils.VerifyPassword(hash, "hunter2hunter2") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if utils.VerifyPassword(hash, "hunter3hunter3") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
	if utils.VerifyPassword("not-a-hash", "hunter2hunter2") {
		t.Error("VerifyPassword() accepted a malformed hash")
	}
}

func TestSecureEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "equal", a: "password123", b: "password123", want: true},
		{name: "different", a: "password123", b: "password124", want: false},
		{name: "different length", a: "short", b: "longer-value", want: false},
		{name: "both empty", a: "", b: "", want: true},
		{name: "one empty", a: "", b: "x", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.SecureEquals(tt.a, tt.b); got != tt.want {
				t.Errorf("SecureEquals(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
