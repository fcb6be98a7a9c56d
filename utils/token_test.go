package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token := GenerateSessionToken()
	assert.Len(t, token, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", token)

	// collisions would mean two tourists share a credential
	assert.NotEqual(t, token, GenerateSessionToken())
}
