package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQueryString(t *testing.T) {
	assert.False(t, SanitizeQueryString(""))
	assert.False(t, SanitizeQueryString("fullname=ann&page=2"))
	assert.True(t, SanitizeQueryString("email=ann@x.com"))
	assert.True(t, SanitizeQueryString("PASSWORD=hunter2"))
}

func TestSanitizedEmail(t *testing.T) {
	assert.Equal(t, "a**@*.com", SanitizedEmail("ann@x.com"))
	assert.Equal(t, "[invalid-email]", SanitizedEmail("not-an-email"))
}
