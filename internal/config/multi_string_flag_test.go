package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiStringFlagAppendsOnSet(t *testing.T) {
	var concrete MultiStringFlag
	iface := &concrete

	require.NoError(t, iface.Set("/=index.html"))
	require.NoError(t, iface.Set("/about=about.html"))

	require.EqualError(t, iface.Set(""), "value cannot be empty")

	require.Equal(t, MultiStringFlag{value: []string{"/=index.html", "/about=about.html"}}, concrete)
	require.Equal(t, 2, concrete.Len())
}

func TestMultiStringFlagSplit(t *testing.T) {
	tests := map[string]struct {
		s          *MultiStringFlag
		wantResult []string
	}{
		"empty_string": {
			s:          &MultiStringFlag{}, // -flag ""
			wantResult: []string{},
		},
		"one_value": {
			s:          &MultiStringFlag{value: []string{"value1"}}, // -flag "value1"
			wantResult: []string{"value1"},
		},
		"multiple_values_in_one_string": {
			s:          &MultiStringFlag{value: []string{"value1,value2"}}, // -flag "value1,value2"
			wantResult: []string{"value1", "value2"},
		},
		"different_separator": {
			s:          &MultiStringFlag{value: []string{"X-A: 1;;X-B: 2"}, separator: ";;"}, // -flag "X-A: 1;;X-B: 2"
			wantResult: []string{"X-A: 1", "X-B: 2"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gotResult := tt.s.Split()
			require.ElementsMatch(t, tt.wantResult, gotResult)
			require.Equal(t, strings.Join(tt.wantResult, tt.s.sep()), strings.Join(gotResult, tt.s.sep()))
		})
	}
}
