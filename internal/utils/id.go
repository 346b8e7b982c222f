package utils

import (
	"crypto/rand"
	"strings"
	"time"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6
)

// NewRoomCode returns a random 6-character room code drawn from
// uppercase letters and digits. Uniqueness is the caller's concern.
func NewRoomCode() string {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to timestamp digits if crypto/rand is unavailable.
		n := time.Now().UnixNano()
		for i := range buf {
			buf[i] = roomCodeAlphabet[n%int64(len(roomCodeAlphabet))]
			n /= int64(len(roomCodeAlphabet))
		}
		return string(buf)
	}
	for i, b := range buf {
		buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(buf)
}

// NormalizeRoomCode uppercases a client-supplied room code so lookups
// are case-insensitive.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
