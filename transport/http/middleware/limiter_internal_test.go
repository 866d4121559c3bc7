package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:52311"
	assert.Equal(t, "10.0.0.7", clientIP(r))

	r.Header.Set("X-Real-IP", " 192.168.1.4 ")
	assert.Equal(t, "192.168.1.4", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(r))
}

func TestUserAgent(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "unknown", userAgent(r))

	r.Header.Set("User-Agent", "pos-terminal/2.1")
	assert.Equal(t, "pos-terminal/2.1", userAgent(r))
}
