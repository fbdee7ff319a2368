package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUSState(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TX", "TX"},
		{"tx", "TX"},
		{"Texas", "TX"},
		{" new york ", "NY"},
		{"N.Y.", "NY"},
		{"District of Columbia", "DC"},
		{"puerto rico", "PR"},
	}
	for _, tc := range tests {
		got, err := NormalizeUSState(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "Atlantis", "ZZ"} {
		_, err := NormalizeUSState(bad)
		assert.ErrorIs(t, err, ErrInvalidState, bad)
	}
}
