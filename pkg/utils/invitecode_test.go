package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode(t *testing.T) {
	code, err := GenerateInviteCode()
	if err != nil {
		t.Fatalf("GenerateInviteCode failed: %v", err)
	}
	if len(code) != 9 {
		t.Errorf("Expected 9-character code, got %q", code)
	}
	if !IsValidInviteCodeFormat(code) {
		t.Errorf("Generated code %q does not match the expected format", code)
	}
}

func TestGenerateInviteCode_AvoidsConfusableCharacters(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode failed: %v", err)
		}
		if strings.ContainsAny(code, "IO01") {
			t.Fatalf("Code %q contains a confusable character", code)
		}
	}
}

func TestGenerateInviteCode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode failed: %v", err)
		}
		if seen[code] {
			t.Fatalf("Duplicate code %q after %d generations", code, i)
		}
		seen[code] = true
	}
}

func TestIsValidInviteCodeFormat(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"ABCD-EFGH", true},
		{"WXYZ-2345", true},
		{"abcd-efgh", false},
		{"ABCDEFGH", false},
		{"ABC-DEFGH", false},
		{"ABCD-EFG0", false},
		{"ABCD-EFGI", false},
		{"ABCD-EFGH-", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidInviteCodeFormat(tt.code); got != tt.valid {
			t.Errorf("IsValidInviteCodeFormat(%q) = %v, want %v", tt.code, got, tt.valid)
		}
	}
}
