package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	require.Equal(t, "48 990", Money(48990))
	require.Equal(t, "27 400", Money(27400.00))
	require.Equal(t, "12 300.50", Money(12300.5))
	require.Equal(t, "999", Money(999))
	require.Equal(t, "1 000", Money(1000))
	require.Equal(t, "1 234 567.89", Money(1234567.89))
	require.Equal(t, "0", Money(0))
	require.Equal(t, "-5 000", Money(-5000))
}
