package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
)

func TestParseHeaderString(t *testing.T) {
	tests := []struct {
		name          string
		headerStrings []string
		valid         bool
	}{
		{
			name:          "Normal case",
			headerStrings: []string{"X-Test-String: Test"},
			valid:         true,
		},
		{
			name:          "Whitespace trim case",
			headerStrings: []string{"   X-Test-String   :   Test  "},
			valid:         true,
		},
		{
			name:          "Content security header case",
			headerStrings: []string{"content-security-policy: default-src 'self'"},
			valid:         true,
		},
		{
			name:          "Multiple header strings",
			headerStrings: []string{"content-security-policy: default-src 'self'", "X-Test-String: Test"},
			valid:         true,
		},
		{
			name:          "Valid and not valid case",
			headerStrings: []string{"content-security-policy: default-src 'self'", "test-case"},
			valid:         false,
		},
		{
			name:          "Not valid case",
			headerStrings: []string{"Tk= N"},
			valid:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeaderString(tt.headerStrings)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestCustomHeaders(t *testing.T) {
	headers, err := ParseHeaderString([]string{"  X-Frame-Options :  DENY ", "Tk: N"})
	require.NoError(t, err)

	next := gateway.HandlerFunc(func(_ *gateway.Request, start gateway.StartResponse) ([]byte, error) {
		start("200 OK", []gateway.Header{{Name: "Content-Type", Value: "text/plain"}})
		return []byte("ok"), nil
	})

	var got []gateway.Header
	body, err := CustomHeaders(headers)(next).Serve(gateway.NewRequest(nil, gateway.Environ{}), func(_ string, h []gateway.Header) {
		got = h
	})
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
	require.Equal(t, []gateway.Header{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "X-Frame-Options", Value: "DENY"},
		{Name: "Tk", Value: "N"},
	}, got)
}

func TestCustomHeadersWithoutHeaders(t *testing.T) {
	next := gateway.HandlerFunc(func(_ *gateway.Request, start gateway.StartResponse) ([]byte, error) {
		start("200 OK", nil)
		return nil, nil
	})

	var got []gateway.Header
	_, err := CustomHeaders(nil)(next).Serve(gateway.NewRequest(nil, gateway.Environ{}), func(_ string, h []gateway.Header) {
		got = h
	})
	require.NoError(t, err)
	require.Empty(t, got)
}
