package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePool(t *testing.T) {
	for _, p := range Pools {
		parsed, err := ParsePool(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	for _, name := range []string{" first_4 ", "win\n", "Win", ""} {
		_, err := ParsePool(name)
		assert.ErrorIs(t, err, ErrPoolName, "name %q", name)
	}
}

func TestPoolRequirements(t *testing.T) {
	tests := []struct {
		pool    Pool
		level   int
		least   int
		rank    int
		ordered bool
	}{
		{PoolWin, 1, 0, 1, true},
		{PoolQuinella, 2, 2, 2, false},
		{PoolTierce, 3, 3, 3, true},
		{PoolTrio, 3, 3, 3, false},
		{PoolPlace, 3, 3, 1, false},
		{PoolPlaceQ, 3, 3, 2, false},
		{PoolQuartet, 4, 4, 4, true},
		{PoolFirst4, 4, 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.pool.String(), func(t *testing.T) {
			assert.Equal(t, tt.level, tt.pool.Level())
			assert.Equal(t, tt.least, tt.pool.MinCompetitors())
			assert.Equal(t, tt.rank, tt.pool.Rank())
			assert.Equal(t, tt.ordered, tt.pool.Ordered())
		})
	}

	assert.False(t, Pool("exacta").Valid())
}

func TestNewCoefficients(t *testing.T) {
	c, err := NewCoefficients()
	require.NoError(t, err)
	assert.Equal(t, DefaultCoefficients, c)

	c, err = NewCoefficients(1, 0.81, 0.65)
	require.NoError(t, err)
	assert.Equal(t, Coefficients{1, 0.81, 0.65, 1}, c)
	assert.Equal(t, 0.65, c.Level(3))

	_, err = NewCoefficients(1, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDimension)

	_, err = NewCoefficients(1, -0.5)
	assert.ErrorIs(t, err, ErrRange)
}

func TestValidateProbabilities(t *testing.T) {
	assert.NoError(t, ValidateProbabilities([]float64{0.592, 0.285, 0.123}))
	assert.NoError(t, ValidateProbabilities([]float64{0.5, 0.5 + 5e-7}))
	assert.ErrorIs(t, ValidateProbabilities([]float64{0.5, 0.49}), ErrRange)
	assert.ErrorIs(t, ValidateProbabilities([]float64{1.2, -0.2}), ErrRange)
	assert.ErrorIs(t, ValidateProbabilities(nil), ErrDimension)
}

func TestErrorKind(t *testing.T) {
	_, err := ParsePool("nope")
	assert.Equal(t, "pool_name", ErrorKind(err))
	assert.Equal(t, "range", ErrorKind(ValidateOdds([]float64{0.9})))
	assert.Equal(t, "other", ErrorKind(assert.AnError))
}
