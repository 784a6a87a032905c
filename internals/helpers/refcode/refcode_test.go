package refcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quest4knowledge_backend/internals/apperr"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "GIG-0001", Gig(1))
	assert.Equal(t, "SES-0042", Session(42))
	assert.Equal(t, "TUT-1234", Tutor(1234))
	assert.Equal(t, "OLS-12345", Online(12345)) // pad never truncates
}

func TestParseAcceptedForms(t *testing.T) {
	for _, raw := range []string{"GIG-0007", "GIG-7", "GIG7", "gig-7", "7"} {
		id, err := ParseGig(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, uint(7), id, raw)
	}
}

func TestParseRejections(t *testing.T) {
	for _, raw := range []string{"", "GIG-", "GIG-abc", "SES-7", "7.5", "-7", "GIG--7", "0"} {
		_, err := ParseGig(raw)
		assert.Error(t, err, raw)
		assert.True(t, apperr.Is(err, apperr.KindValidation), raw)
	}
}

func TestParseSessionAndTutor(t *testing.T) {
	id, err := ParseSession("SES-0009")
	assert.NoError(t, err)
	assert.Equal(t, uint(9), id)

	id, err = ParseTutor("TUT0012")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), id)
}
