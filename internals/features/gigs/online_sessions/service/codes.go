// internals/features/gigs/online_sessions/service/codes.go
package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// No 0/O, 1/I, or ambiguous lookalikes: the code is read out loud over
// the phone.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewMeetingCode returns a 12-character code grouped XXXX-XXXX-XXXX.
func NewMeetingCode() (string, error) {
	var b strings.Builder
	b.Grow(14)
	for i := 0; i < 12; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NewPinCode returns a 6-digit numeric pin (leading zeros allowed).
func NewPinCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	digits := n.String()
	return strings.Repeat("0", 6-len(digits)) + digits, nil
}
