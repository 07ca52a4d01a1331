package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrentSimpleRoot(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x - 2, nil }
	res, err := Brent(f, 0, 2, 1e-12, 1e-12, 0)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-9)
}

func TestBrentTranscendental(t *testing.T) {
	f := func(x float64) (float64, error) { return math.Cos(x) - x, nil }
	res, err := Brent(f, 0, 1, 1e-10, 1e-10, 0)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.7390851332, res.Root, 1e-8)
}

func TestBrentNoBracket(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x + 1, nil }
	_, err := Brent(f, -1, 1, 1e-10, 1e-10, 0)
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestBrentRootAtBoundary(t *testing.T) {
	f := func(x float64) (float64, error) { return x, nil }
	res, err := Brent(f, 0, 1, 1e-10, 1e-10, 0)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 0.0, res.Root)
}

func TestBrentBoundedIterations(t *testing.T) {
	// steep function with a tiny cap still terminates and reports failure
	f := func(x float64) (float64, error) { return math.Tanh(1e6 * (x - 0.3)), nil }
	res, err := Brent(f, 0, 1, 0, 0, 3)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
}

func TestFixedPoint(t *testing.T) {
	f := func(x float64) (float64, error) { return math.Cos(x), nil }
	x, ok, err := FixedPoint(f, 1.0, 1e-9, 200)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.7390851332, x, 1e-6)
}

func TestFixedPointCap(t *testing.T) {
	// divergent map hits the cap and still hands back the last iterate
	f := func(x float64) (float64, error) { return 2 * x, nil }
	x, ok, err := FixedPoint(f, 1.0, 1e-9, 5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 32.0, x)
}

func TestPolyval(t *testing.T) {
	assert.Equal(t, 1.0, Polyval([]float64{1}, 3))
	assert.InDelta(t, 1+2*3+4*9, Polyval([]float64{1, 2, 4}, 3), 1e-12)
	assert.Equal(t, 0.0, Polyval(nil, 3))
}
