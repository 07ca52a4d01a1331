package props

import "errors"

// Phase of a (p, h) state.
type Phase int

const (
	PhaseLiquid Phase = iota
	PhaseTwoPhase
	PhaseVapor
)

func (p Phase) String() string {
	switch p {
	case PhaseLiquid:
		return "liquid"
	case PhaseTwoPhase:
		return "two-phase"
	case PhaseVapor:
		return "vapor"
	}
	return "unknown"
}

// SatCurve is the saturation envelope of one fluid at one pressure,
// evaluated once per solve and threaded through the zone machinery.
type SatCurve struct {
	Incomp  bool
	Tbubble float64
	Tdew    float64
	HsatL   float64
	HsatV   float64
}

// Saturation queries the envelope at pressure p. Incompressible fluids have
// no envelope and are always classified liquid.
func Saturation(f Fluid, p float64) (SatCurve, error) {
	if f.O.Incompressible(f.Name) {
		return SatCurve{Incomp: true}, nil
	}
	pc, err := f.Pcrit()
	if err != nil {
		return SatCurve{}, err
	}
	if p >= pc {
		// supercritical: no envelope, treat single-phase by enthalpy later
		return SatCurve{}, ErrPropertyUndefined
	}
	var sc SatCurve
	if sc.Tbubble, err = f.T_pq(p, 0.0); err != nil {
		return SatCurve{}, err
	}
	if sc.Tdew, err = f.T_pq(p, 1.0); err != nil {
		return SatCurve{}, err
	}
	if sc.HsatL, err = f.H_pq(p, 0.0); err != nil {
		return SatCurve{}, err
	}
	if sc.HsatV, err = f.H_pq(p, 1.0); err != nil {
		return SatCurve{}, err
	}
	return sc, nil
}

// Classify returns the phase of enthalpy h against the envelope.
func (sc SatCurve) Classify(h float64) Phase {
	if sc.Incomp {
		return PhaseLiquid
	}
	if h <= sc.HsatL {
		return PhaseLiquid
	}
	if h >= sc.HsatV {
		return PhaseVapor
	}
	return PhaseTwoPhase
}

// Quality returns vapor quality for enthalpy h, clamped to [0, 1].
func (sc SatCurve) Quality(h float64) float64 {
	if sc.Incomp {
		return 0
	}
	x := (h - sc.HsatL) / (1.0e-6 + sc.HsatV - sc.HsatL)
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// IsUndefined reports whether err stems from an out-of-region property query.
func IsUndefined(err error) bool {
	return errors.Is(err, ErrPropertyUndefined)
}
