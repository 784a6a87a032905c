// internals/features/gigs/online_sessions/service/codes_test.go
package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeetingCodeShape(t *testing.T) {
	shape := regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)
	for i := 0; i < 50; i++ {
		code, err := NewMeetingCode()
		require.NoError(t, err)
		assert.Regexp(t, shape, code)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestNewPinCodeIsSixDigits(t *testing.T) {
	shape := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		pin, err := NewPinCode()
		require.NoError(t, err)
		assert.Regexp(t, shape, pin)
	}
}
