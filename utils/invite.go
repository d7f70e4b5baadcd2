package utils

import (
	"crypto/rand"
	"fmt"
)

// Charset without 0/O/1/I to keep codes readable when typed from a screen.
const inviteCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateInviteCode returns a short random code used to join an organization.
func GenerateInviteCode(length int) (string, error) {
	if length <= 0 {
		length = 8
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	out := make([]byte, length)
	for i := range b {
		out[i] = inviteCharset[int(b[i])%len(inviteCharset)]
	}
	return string(out), nil
}
