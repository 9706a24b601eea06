package headers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewNormalizesNames(t *testing.T) {
	v := New(map[string]string{
		"PATH_INFO":            "/index.html",
		"HTTP_IF_NONE_MATCH":   `"abc"`,
		"HTTP_X_FORWARDED_FOR": "10.0.0.1",
		"CONTENT_TYPE":         "text/plain",
	})

	require.Equal(t, 3, v.Len())

	tests := map[string]struct {
		name     string
		expected string
	}{
		"canonical_name":  {name: "If-None-Match", expected: `"abc"`},
		"lowercase_name":  {name: "if-none-match", expected: `"abc"`},
		"underscore_name": {name: "x_forwarded_for", expected: "10.0.0.1"},
		"content_type":    {name: "Content-Type", expected: "text/plain"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := v.Get(test.name)
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestViewMissingHeader(t *testing.T) {
	v := New(map[string]string{"PATH_INFO": "/"})

	_, err := v.Get("If-None-Match")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingHeader))
	require.Contains(t, err.Error(), "If-None-Match")

	require.Equal(t, "fallback", v.GetDefault("If-None-Match", "fallback"))

	_, ok := v.Lookup("If-None-Match")
	require.False(t, ok)
}

func TestViewPresentEmptyValue(t *testing.T) {
	v := New(map[string]string{"HTTP_X_EMPTY": ""})

	got, err := v.Get("X-Empty")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Empty(t, v.GetDefault("X-Empty", "fallback"))
}

func TestNilView(t *testing.T) {
	var v *View

	_, ok := v.Lookup("Host")
	require.False(t, ok)
	require.Equal(t, "d", v.GetDefault("Host", "d"))
	require.Zero(t, v.Len())
}
