package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/types/money"
)

func Test_Parse(t *testing.T) {
	m, err := money.Parse(72350.99)
	require.NoError(t, err)
	assert.Equal(t, int64(7235099), m.Cents())
	assert.Equal(t, 72350.99, m.Float())
	assert.Equal(t, "72350.99", m.String())

	m, err = money.Parse(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Cents())

	_, err = money.Parse(-1)
	assert.Error(t, err)

	_, err = money.Parse(math.NaN())
	assert.Error(t, err)

	_, err = money.Parse(math.Inf(1))
	assert.Error(t, err)
}

func Test_Rounding(t *testing.T) {
	// 19.99 is not exactly representable as a float; cents must not drift.
	m := money.MustParse(19.99)
	assert.Equal(t, int64(1999), m.Cents())

	assert.True(t, m.Equal(money.FromCents(1999)))
}
