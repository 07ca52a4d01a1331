package hex

import (
	"orc/config"
	"orc/correlations"
	"orc/props"
)

// 换热器模型配置：策略为带标签的变体类型，几何与公差在入口处一次性补全默认值

// Strategy selects how the effective duty is determined. Exactly one variant
// is attached to a Config.
type Strategy interface{ strategy() }

// PinchPoint solves for the duty at which the profile pinch equals DeltaT.
type PinchPoint struct {
	DeltaT float64 // target pinch [K]
}

// FixedEfficiency takes duty as a fixed fraction of the maximum duty.
type FixedEfficiency struct {
	Epsilon float64 // [-], clamped to [0, 1]
}

// PolyEfficiency evaluates the efficiency polynomial in the cold-side mass
// flow rate (coefficients low order first).
type PolyEfficiency struct {
	Coeffs []float64
}

// RegimeU is a per-phase-regime convective coefficient set [W/m^2-K].
type RegimeU struct {
	Liquid   float64
	TwoPhase float64
	Vapor    float64
}

func (r RegimeU) forPhase(ph props.Phase) float64 {
	switch ph {
	case props.PhaseTwoPhase:
		return r.TwoPhase
	case props.PhaseVapor:
		return r.Vapor
	}
	return r.Liquid
}

// ConstantU matches the available area with fixed per-regime coefficients.
type ConstantU struct {
	Hot  RegimeU
	Cold RegimeU
}

// ScaledU matches the available area with nominal coefficients scaled by a
// mass-flow power law: U = U_n * (mdot/mdot_n)^Exponent.
type ScaledU struct {
	Hot, Cold       RegimeU
	MdotNominalHot  float64
	MdotNominalCold float64
	Exponent        float64 // defaulted to 0.8
}

// CorrelationKind names an empirical convective-coefficient correlation.
type CorrelationKind int

const (
	CorrMartinPlate CorrelationKind = iota // single-phase chevron plate
	CorrGnielinskiChannel
	CorrGnielinskiTube
	CorrCooper    // pool boiling, heat-flux dependent
	CorrKandlikar // plate flow boiling, heat-flux dependent
	CorrLongo     // plate condensation
	CorrShah      // condensation, quality-averaged
	CorrShahEvap  // flow boiling, heat-flux dependent, quality-averaged
)

// SideCorrelations picks a correlation per regime for one side.
type SideCorrelations struct {
	SinglePhase CorrelationKind
	Boiling     CorrelationKind
	Condensing  CorrelationKind
	Roughness   float64 // Cooper Rp [um], defaulted to 1
}

// CorrelatedU matches the available area with named empirical correlations.
type CorrelatedU struct {
	Hot  SideCorrelations
	Cold SideCorrelations
}

func (PinchPoint) strategy()      {}
func (FixedEfficiency) strategy() {}
func (PolyEfficiency) strategy()  {}
func (ConstantU) strategy()       {}
func (ScaledU) strategy()         {}
func (CorrelatedU) strategy()     {}

// Side is one side's geometry.
type Side struct {
	Area   float64           // heat transfer area [m^2]
	Volume float64           // retained fluid volume [m^3]
	Gaps   int               // parallel plate gaps carrying the flow
	TubeID float64           // tube inner diameter [m], tube correlations only
	Fin    *correlations.Fin // nil for a bare surface
}

// Config is the full exchanger model description. Zero fields are filled
// once by withDefaults before any solving begins.
type Config struct {
	Strategy Strategy
	Plate    correlations.Plate // shared plate geometry for plate correlations
	Hot      Side
	Cold     Side
	Slip     props.SlipModel

	// enthalpy validity bounds of the coefficient tables [J/kg]
	HMin, HMax float64

	// NormalizeRoles swaps the streams when the declared hot side is the
	// colder one, instead of flagging the call infeasible. Needed only for
	// strategies whose coefficients are not hot/cold symmetric.
	NormalizeRoles bool

	Solver config.Solver
}

func (c Config) withDefaults() Config {
	if c.Strategy == nil {
		c.Strategy = FixedEfficiency{Epsilon: 1}
	}
	if s, ok := c.Strategy.(ScaledU); ok {
		if s.Exponent == 0 {
			s.Exponent = 0.8
		}
		c.Strategy = s
	}
	if s, ok := c.Strategy.(CorrelatedU); ok {
		if s.Hot.Roughness == 0 {
			s.Hot.Roughness = 1
		}
		if s.Cold.Roughness == 0 {
			s.Cold.Roughness = 1
		}
		c.Strategy = s
	}
	if c.Hot.Gaps == 0 {
		c.Hot.Gaps = 1
	}
	if c.Cold.Gaps == 0 {
		c.Cold.Gaps = 1
	}
	if c.HMin == 0 && c.HMax == 0 {
		c.HMin, c.HMax = -5.0e6, 5.0e6
	}
	if c.Solver == (config.Solver{}) {
		c.Solver = config.Default()
	}
	return c
}
