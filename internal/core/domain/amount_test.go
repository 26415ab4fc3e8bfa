package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNative(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1000000000000000000"},
		{"0.05", "50000000000000000"},
		{"0.000000000000000001", "1"},
		{" 2.5 ", "2500000000000000000"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNative(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseNative_Rejects(t *testing.T) {
	_, err := ParseNative("")
	assert.ErrorIs(t, err, ErrEmptyAmount)

	_, err = ParseNative("-0.1")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ParseNative("0.0000000000000000001")
	assert.ErrorIs(t, err, ErrAmountPrecision)

	_, err = ParseNative("abc")
	assert.Error(t, err)
}

func TestFormatNative(t *testing.T) {
	assert.Equal(t, "0.05", FormatNative(MustParseNative("0.05")))
	assert.Equal(t, "1", FormatNative(MustParseNative("1")))
	assert.Equal(t, "0", FormatNative(nil))
	assert.Equal(t, "20", FormatGwei(big.NewInt(20_000_000_000)))
}

func TestParseWei(t *testing.T) {
	v, err := ParseWei("1000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.Int64())

	_, err = ParseWei("1.5")
	assert.Error(t, err)

	_, err = ParseWei("-1")
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction(" Transfer ")
	assert.True(t, ok)
	assert.Equal(t, ActionTransfer, a)

	_, ok = ParseAction("bridge")
	assert.False(t, ok)
}
