package correlations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// water-like liquid at ~300 K
const (
	rhoW = 997.0
	muW  = 8.9e-4
	cpW  = 4180.0
	kW   = 0.61
)

func TestTubeTurbulent(t *testing.T) {
	f, h, re := Tube(0.2, 0.01, rhoW, muW, cpW, kW)
	assert.Greater(t, re, 2300.0)
	assert.Greater(t, f, 0.0)
	assert.Less(t, f, 0.1)
	// turbulent water in a 10 mm tube sits in the kW/m^2-K range
	assert.Greater(t, h, 1000.0)
	assert.Less(t, h, 1e5)
}

func TestChannelLaminarFloor(t *testing.T) {
	_, h, re := Channel(1e-4, 0.1, 0.002, rhoW, muW, cpW, kW)
	assert.Less(t, re, 1000.0)
	dh := 2 * 0.002 * 0.1 / (0.102)
	assert.InDelta(t, 3.66*kW/dh, h, 1e-9)
}

func TestPlateGeometry(t *testing.T) {
	p := Plate{Amplitude: 0.001, Wavelength: 0.0077, Inclination: math.Pi / 3, Bp: 0.1, Lp: 0.4}
	geo := p.Geometry()
	assert.Greater(t, geo.Phi, 1.0)
	assert.InDelta(t, geo.Phi*0.04, geo.Ap, 1e-12)
	assert.InDelta(t, 0.1*0.4*0.002, geo.Vchannel, 1e-12)
	assert.InDelta(t, 4*0.001/geo.Phi, geo.Dh, 1e-12)
}

func TestPlateSinglePhase(t *testing.T) {
	p := Plate{Amplitude: 0.001, Wavelength: 0.0077, Inclination: math.Pi / 3, Bp: 0.1, Lp: 0.4}
	h, dp, re := p.SinglePhase(0.05, rhoW, muW, cpW, kW)
	assert.Greater(t, re, 0.0)
	assert.Greater(t, h, 100.0)
	assert.Greater(t, dp, 0.0)

	// more flow, more transfer
	h2, dp2, _ := p.SinglePhase(0.10, rhoW, muW, cpW, kW)
	assert.Greater(t, h2, h)
	assert.Greater(t, dp2, dp)
}

func TestCooperMonotonicInFlux(t *testing.T) {
	h1 := CooperPoolBoiling(0.1, 1.0, 5000, 134.0)
	h2 := CooperPoolBoiling(0.1, 1.0, 20000, 134.0)
	assert.Greater(t, h1, 0.0)
	assert.Greater(t, h2, h1)
}

func TestLongoRegimes(t *testing.T) {
	// laminar-equivalent branch is quality independent
	hLam := LongoCondensation(0.1, 2, 0.003, 1300, 10, 2e-4, 1300, 0.08)
	hLam2 := LongoCondensation(0.9, 2, 0.003, 1300, 10, 2e-4, 1300, 0.08)
	assert.InDelta(t, hLam, hLam2, 1e-9)

	hTurb := LongoCondensation(0.5, 80, 0.003, 1300, 10, 2e-4, 1300, 0.08)
	assert.Greater(t, hTurb, hLam)

	// turbulent branch keeps its 0.012 Nu/Re slope
	prL := 1300.0 * 2e-4 / 0.08
	reEq := 80 * (0.5 + 0.5*math.Sqrt(130.0)) * 0.003 / 2e-4
	want := (0.012*(reEq-1750) + 60) * math.Pow(prL, 1.0/3.0) * 0.08 / 0.003
	assert.InEpsilon(t, want, hTurb, 1e-12)
}

func TestShahCondensationBounds(t *testing.T) {
	hLow := ShahCondensation(0.05, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	hHigh := ShahCondensation(0.8, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	assert.Greater(t, hHigh, hLow)
}

func TestShahCondensationAverage(t *testing.T) {
	// a degenerate interval collapses to the pointwise value
	hPoint := ShahCondensation(0.4, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	hDeg := ShahCondensationAverage(0.4, 0.4, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	assert.InEpsilon(t, hPoint, hDeg, 1e-12)

	// the mean sits between the endpoint values
	hLow := ShahCondensation(0.05, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	hHigh := ShahCondensation(0.8, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	hAvg := ShahCondensationAverage(0.05, 0.8, 40, 0.003, 0.2, 2e-4, 1300, 0.08)
	assert.Greater(t, hAvg, hLow)
	assert.Less(t, hAvg, hHigh)

	// negative mass flux falls back to the 3 kg/m^2-s floor
	hNeg := ShahCondensationAverage(0.05, 0.8, -5, 0.003, 0.2, 2e-4, 1300, 0.08)
	hFloor := ShahCondensationAverage(0.05, 0.8, 3, 0.003, 0.2, 2e-4, 1300, 0.08)
	assert.Equal(t, hFloor, hNeg)
}

func TestShahEvaporation(t *testing.T) {
	args := func(x, q float64) float64 {
		return ShahEvaporation(x, 40, 0.003, q, 1300, 10, 2e-4, 1.2e-5, 1300, 900, 0.08, 0.015, 2e5)
	}

	h1 := args(0.5, 5000)
	h2 := args(0.5, 20000)
	assert.Greater(t, h1, 0.0)
	assert.Greater(t, h2, h1, "nucleate contribution grows with flux")

	// all-vapor limit is the Dittus-Boelter vapor coefficient
	prV := 900.0 * 1.2e-5 / 0.015
	hV := 0.023 * math.Pow(40*0.003/1.2e-5, 0.8) * math.Pow(prV, 0.4) * 0.015 / 0.003
	assert.InEpsilon(t, hV, args(1, 5000), 1e-12)

	// a degenerate interval collapses to the pointwise value
	hDeg := ShahEvaporationAverage(0.5, 0.5, 40, 0.003, 5000, 1300, 10, 2e-4, 1.2e-5, 1300, 900, 0.08, 0.015, 2e5)
	assert.InEpsilon(t, h1, hDeg, 1e-12)

	hAvg := ShahEvaporationAverage(0.1, 0.9, 40, 0.003, 5000, 1300, 10, 2e-4, 1.2e-5, 1300, 900, 0.08, 0.015, 2e5)
	assert.Greater(t, hAvg, 0.0)
}

func TestSchmidtEfficiency(t *testing.T) {
	fn := Fin{Thickness: 1.5e-4, Conductivity: 200, RootRadius: 0.005, TipRadius: 0.012}
	eta := fn.SchmidtEfficiency(80)
	assert.Greater(t, eta, 0.0)
	assert.LessOrEqual(t, eta, 1.0)
	// efficiency drops with stronger convection
	assert.Less(t, fn.SchmidtEfficiency(800), eta)
	// bare surface
	assert.Equal(t, 1.0, Fin{}.SchmidtEfficiency(500))
}
