package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.8"}, "10.0.0.1:5000", "203.0.113.8"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "203.0.113.9"}, "10.0.0.1:5000", "203.0.113.9"},
		{"remote addr", nil, "192.0.2.1:5000", "192.0.2.1"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:5000", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health_check", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			var got string
			ClientIdentifier(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetClientIP(r.Context())
			})).ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetClientIPUnknown(t *testing.T) {
	assert.Equal(t, "unknown", GetClientIP(context.Background()))
}
