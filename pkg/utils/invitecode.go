package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// inviteCodeAlphabet excludes I, O, 0 and 1 to avoid confusion when codes
// are shared verbally or retyped.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var inviteCodePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)

// GenerateInviteCode returns a fresh family invite code in XXXX-XXXX form.
// Uniqueness against existing codes is the caller's responsibility.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}

	return string(code[:4]) + "-" + string(code[4:]), nil
}

// IsValidInviteCodeFormat reports whether a code has the XXXX-XXXX shape
// over the confusable-free alphabet.
func IsValidInviteCodeFormat(code string) bool {
	return inviteCodePattern.MatchString(code)
}
