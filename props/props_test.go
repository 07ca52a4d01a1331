package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pEvap = 4.188e5 // R245fa evaporation pressure used across the demo cases

func TestSaturationEnvelope(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	sc, err := Saturation(f, pEvap)
	require.NoError(t, err)

	assert.False(t, sc.Incomp)
	assert.InDelta(t, sc.Tbubble, sc.Tdew, 1e-9, "pure fluid: bubble equals dew")
	assert.Greater(t, sc.HsatV, sc.HsatL)

	hl, err := f.H_pq(pEvap, 0)
	require.NoError(t, err)
	hv, err := f.H_pq(pEvap, 1)
	require.NoError(t, err)
	assert.Equal(t, hl, sc.HsatL)
	assert.Equal(t, hv, sc.HsatV)

	// envelope consistent with the forward (p, h) queries
	tmid, err := f.T_ph(pEvap, 0.5*(hl+hv))
	require.NoError(t, err)
	assert.InDelta(t, sc.Tdew, tmid, 1e-6)
}

func TestPhaseClassification(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	sc, err := Saturation(f, pEvap)
	require.NoError(t, err)

	assert.Equal(t, PhaseLiquid, sc.Classify(sc.HsatL-1e3))
	assert.Equal(t, PhaseTwoPhase, sc.Classify(0.5*(sc.HsatL+sc.HsatV)))
	assert.Equal(t, PhaseVapor, sc.Classify(sc.HsatV+1e3))

	assert.Equal(t, 0.0, sc.Quality(sc.HsatL-1e5))
	assert.Equal(t, 1.0, sc.Quality(sc.HsatV+1e5))
	assert.InDelta(t, 0.5, sc.Quality(0.5*(sc.HsatL+sc.HsatV)), 1e-3)
}

func TestIncompressibleHasNoEnvelope(t *testing.T) {
	o := NewRefOracle()
	f := Fluid{Name: "INCOMP::T66", O: o}

	sc, err := Saturation(f, 2.0e5)
	require.NoError(t, err)
	assert.True(t, sc.Incomp)
	assert.Equal(t, PhaseLiquid, sc.Classify(1e6))

	// quality query on the oil is an out-of-region state pair
	_, err = f.Q_ph(2.0e5, 1e5)
	assert.True(t, IsUndefined(err))
}

func TestUnknownFluid(t *testing.T) {
	f := Fluid{Name: "R000", O: NewRefOracle()}
	_, err := f.T_ph(1e5, 2e5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFluid)
}

func TestCpFallbackInsideDome(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	sc, err := Saturation(f, pEvap)
	require.NoError(t, err)

	cpSatL, err := f.Prop_pq(PropC, pEvap, 0)
	require.NoError(t, err)
	cp, err := f.Cp_ph(pEvap, 0.5*(sc.HsatL+sc.HsatV))
	require.NoError(t, err)
	assert.Equal(t, cpSatL, cp)
}

func TestTransportFallbackInsideDome(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	sc, err := Saturation(f, pEvap)
	require.NoError(t, err)

	muSatL, err := f.Prop_pq(PropV, pEvap, 0)
	require.NoError(t, err)
	mu, k, err := f.Transport(pEvap, 0.5*(sc.HsatL+sc.HsatV))
	require.NoError(t, err)
	assert.Equal(t, muSatL, mu)
	assert.Greater(t, k, 0.0)
}

func TestSupercriticalUndefined(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	_, err := Saturation(f, 4.0e6)
	assert.True(t, IsUndefined(err))
}

func TestTwoPhaseDensityBounds(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	rhoV, err := f.D_pq(pEvap, 1)
	require.NoError(t, err)
	rhoL, err := f.D_pq(pEvap, 0)
	require.NoError(t, err)

	for _, slip := range []SlipModel{SlipZivi, SlipHomogeneous} {
		rho, err := TwoPhaseDensity(f, pEvap, 0.1, 0.9, slip)
		require.NoError(t, err)
		assert.Greater(t, rho, rhoV)
		assert.Less(t, rho, rhoL)
	}

	// degenerate interval still lies inside the bounds
	rho, err := TwoPhaseDensity(f, pEvap, 0.5, 0.5, SlipZivi)
	require.NoError(t, err)
	assert.Greater(t, rho, rhoV)
	assert.Less(t, rho, rhoL)

	// all-liquid and all-vapor endpoints collapse to the phase densities
	rho, err = TwoPhaseDensity(f, pEvap, 0, 0, SlipZivi)
	require.NoError(t, err)
	assert.InEpsilon(t, rhoL, rho, 1e-3)

	_, err = TwoPhaseDensity(f, pEvap, -0.5, 0.9, SlipZivi)
	assert.Error(t, err)
}

func TestZiviSlipsDenserThanHomogeneous(t *testing.T) {
	f := Fluid{Name: "R245fa", O: NewRefOracle()}
	zivi, err := TwoPhaseDensity(f, pEvap, 0.1, 0.9, SlipZivi)
	require.NoError(t, err)
	homog, err := TwoPhaseDensity(f, pEvap, 0.1, 0.9, SlipHomogeneous)
	require.NoError(t, err)
	// slip holds liquid back, so the Zivi mixture is heavier
	assert.Greater(t, zivi, homog)
}

func TestIsentropicRoundTrip(t *testing.T) {
	f := Fluid{Name: "R717", O: NewRefOracle()}
	h, err := f.H_pt(50.75e5, 473.15)
	require.NoError(t, err)
	s, err := f.S_ph(50.75e5, h)
	require.NoError(t, err)
	back, err := f.H_ps(50.75e5, s)
	require.NoError(t, err)
	assert.InEpsilon(t, h, back, 1e-9)

	// expansion along the isentrope lowers enthalpy
	hex, err := f.H_ps(2.47e5, s)
	require.NoError(t, err)
	assert.Less(t, hex, h)
}
