package expander

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orc/model"
	"orc/props"
)

// 氨工质开式驱动工况覆盖各求解路径

func ammoniaSupply() model.Stream {
	return model.Stream{
		Fluid: "R717", P: 50.75e5,
		Kind: model.SupplyTemperature, T: 473.15, Mdot: 0.160,
	}
}

func ammoniaInternals() Semiempirical {
	return Semiempirical{
		AUsu: 21.2, AUex: 34.2, AUamb: 3.4,
		Asu: 2.0e-4, Aleak: 4.0e-6, Rv: 4.0,
		Alpha: 0.1, Wdot0: 150, Tloss: 0.5,
		MdotNominal: 0.16,
	}
}

const (
	exhaustP = 2.47e5
	ambientT = 298.15
)

func TestSemiempiricalAmmonia(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	cfg := Config{Strategy: ammoniaInternals()}

	res, err := Solve(o, su, exhaustP, ambientT, cfg)
	require.NoError(t, err)
	require.Equal(t, model.FlagConverged, res.Flag)

	assert.Greater(t, res.N, 0.0)
	assert.Greater(t, res.WShaft, 0.0)
	assert.Less(t, res.WShaft, res.WIsentropic, "losses must cost shaft power")
	assert.Greater(t, res.EtaIs, 0.0)
	assert.Less(t, res.EtaIs, 1.0)

	assert.GreaterOrEqual(t, res.MdotLeak, 0.0)
	assert.LessOrEqual(t, res.MdotLeak, su.Mdot)
	assert.Greater(t, res.FillingFactor, 0.0)

	// overall balance: supply enthalpy feeds shaft power, ambient loss and
	// the exhaust stream
	f := props.Fluid{Name: su.Fluid, O: o}
	hsu, err := f.H_pt(su.P, su.T)
	require.NoError(t, err)
	inOut := su.Mdot * (hsu - res.Hex)
	assert.InDelta(t, inOut, res.WShaft+res.Qamb, 0.01*math.Abs(res.WShaft))

	assert.Less(t, res.Tex, su.T)
	assert.Less(t, math.Abs(res.Residual), 1e-3)
}

func TestAdiabaticShellBestEffort(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	s := ammoniaInternals()
	// no wall exchange at all: the balance residual never changes sign
	s.AUsu, s.AUex, s.AUamb = 0, 0, 0

	res, err := Solve(o, su, exhaustP, ambientT, Config{Strategy: s})
	require.NoError(t, err)
	assert.Equal(t, model.FlagNotConverged, res.Flag)

	// best-effort outputs are still populated
	assert.Greater(t, res.WShaft, 0.0)
	assert.Greater(t, res.Twall, 0.0)
	assert.NotZero(t, res.Residual)
	assert.Zero(t, res.Qsu)
	assert.Zero(t, res.Qex)
	assert.Zero(t, res.Qamb)
}

func TestLeakageBounds(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()

	tight := ammoniaInternals()
	tight.Aleak = 0
	res, err := Solve(o, su, exhaustP, ambientT, Config{Strategy: tight})
	require.NoError(t, err)
	assert.Zero(t, res.MdotLeak)

	wide := ammoniaInternals()
	wide.Aleak = 1e-3
	res, err = Solve(o, su, exhaustP, ambientT, Config{Strategy: wide})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.MdotLeak, su.Mdot)
}

func TestReversedPressureRatio(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	su.P = 2.0e5 // below the exhaust line

	res, err := Solve(o, su, exhaustP, ambientT, Config{Strategy: ammoniaInternals()})
	require.NoError(t, err)
	assert.Equal(t, model.FlagInfeasible, res.Flag)
	assert.Equal(t, 1.0, res.EtaIs)
	assert.Equal(t, res.WIsentropic, res.WShaft)
	assert.Zero(t, res.MdotLeak)
	assert.Zero(t, res.Qamb)
}

func TestConstantEfficiency(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	cfg := Config{Strategy: ConstantEfficiency{Epsilon: 0.7}}

	res, err := Solve(o, su, exhaustP, ambientT, cfg)
	require.NoError(t, err)
	require.Equal(t, model.FlagConverged, res.Flag)
	assert.InEpsilon(t, 0.7, res.EtaIs, 1e-12)
	assert.InEpsilon(t, 0.7*res.WIsentropic, res.WShaft, 1e-12)
	assert.Greater(t, res.FillingFactor, 0.0)

	f := props.Fluid{Name: su.Fluid, O: o}
	hsu, err := f.H_pt(su.P, su.T)
	require.NoError(t, err)
	assert.InEpsilon(t, hsu-res.WShaft/su.Mdot, res.Hex, 1e-12)
}

func TestPolyEfficiencySolvesSpeed(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	cfg := Config{Strategy: PolyEfficiency{
		EffCoeffs: []float64{0.6},
		FFCoeffs:  []float64{1.0},
	}}

	res, err := Solve(o, su, exhaustP, ambientT, cfg)
	require.NoError(t, err)
	require.Equal(t, model.FlagConverged, res.Flag)

	// with unit filling factor the swept volume passes the flow exactly
	f := props.Fluid{Name: su.Fluid, O: o}
	hsu, err := f.H_pt(su.P, su.T)
	require.NoError(t, err)
	rho, err := f.D_ph(su.P, hsu)
	require.NoError(t, err)
	wantN := 60 * su.Mdot / (rho * cfg.withDefaults().Vs)
	assert.InEpsilon(t, wantN, res.N, 1e-6)
	assert.InEpsilon(t, 0.6*res.WIsentropic, res.WShaft, 1e-9)
}

func TestNoFlow(t *testing.T) {
	o := props.NewRefOracle()
	su := ammoniaSupply()
	su.Mdot = 0

	res, err := Solve(o, su, exhaustP, ambientT, Config{})
	require.NoError(t, err)
	assert.Equal(t, model.FlagNoFlow, res.Flag)
	assert.Zero(t, res.WShaft)
}
