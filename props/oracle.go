package props

import (
	"errors"
	"fmt"
)

// 流体物性查询接口，调用形式仿照 CoolProp 的 PropsSI

// Prop identifies a thermophysical property in oracle queries.
type Prop string

const (
	PropT     Prop = "T" // temperature [K]
	PropP     Prop = "P" // pressure [Pa]
	PropH     Prop = "H" // specific enthalpy [J/kg]
	PropS     Prop = "S" // specific entropy [J/kg-K]
	PropD     Prop = "D" // density [kg/m^3]
	PropQ     Prop = "Q" // vapor quality [-]
	PropC     Prop = "C" // specific heat cp [J/kg-K]
	PropV     Prop = "V" // dynamic viscosity [Pa-s]
	PropL     Prop = "L" // thermal conductivity [W/m-K]
	PropSigma Prop = "I" // surface tension [N/m]
	PropPcrit Prop = "Pcrit" // critical pressure [Pa]
	PropMolar Prop = "M" // molar mass [kg/mol]
)

// ErrPropertyUndefined signals a state pair outside the fluid's valid region,
// e.g. a quality query on an incompressible or supercritical state. Callers
// catch it and substitute an alternate property pair.
var ErrPropertyUndefined = errors.New("property undefined for state pair")

// ErrUnknownFluid signals a fluid id the backend does not carry.
var ErrUnknownFluid = errors.New("unknown fluid")

// Oracle is the external property backend. Pure, deterministic, reentrant.
type Oracle interface {
	// State returns property want at the state fixed by (in1, v1, in2, v2).
	State(fluid string, want Prop, in1 Prop, v1 float64, in2 Prop, v2 float64) (float64, error)

	// Const returns a state-independent constant (Pcrit, M).
	Const(fluid string, want Prop) (float64, error)

	// Incompressible reports whether the fluid is modeled as a single-phase
	// incompressible liquid (thermal oils, brines).
	Incompressible(fluid string) bool
}

// Fluid binds an oracle to one fluid id.
type Fluid struct {
	Name string
	O    Oracle
}

func (f Fluid) state(want Prop, in1 Prop, v1 float64, in2 Prop, v2 float64) (float64, error) {
	x, err := f.O.State(f.Name, want, in1, v1, in2, v2)
	if err != nil {
		return 0, fmt.Errorf("%s(%s=%g,%s=%g) for %s: %w", want, in1, v1, in2, v2, f.Name, err)
	}
	return x, nil
}

func (f Fluid) T_ph(p, h float64) (float64, error) { return f.state(PropT, PropP, p, PropH, h) }
func (f Fluid) H_pt(p, t float64) (float64, error) { return f.state(PropH, PropP, p, PropT, t) }
func (f Fluid) D_ph(p, h float64) (float64, error) { return f.state(PropD, PropP, p, PropH, h) }
func (f Fluid) S_ph(p, h float64) (float64, error) { return f.state(PropS, PropP, p, PropH, h) }
func (f Fluid) H_ps(p, s float64) (float64, error) { return f.state(PropH, PropP, p, PropS, s) }
func (f Fluid) D_ps(p, s float64) (float64, error) { return f.state(PropD, PropP, p, PropS, s) }
func (f Fluid) Q_ph(p, h float64) (float64, error) { return f.state(PropQ, PropP, p, PropH, h) }
func (f Fluid) T_pq(p, q float64) (float64, error) { return f.state(PropT, PropP, p, PropQ, q) }
func (f Fluid) H_pq(p, q float64) (float64, error) { return f.state(PropH, PropP, p, PropQ, q) }
func (f Fluid) D_pq(p, q float64) (float64, error) { return f.state(PropD, PropP, p, PropQ, q) }

// Prop_ph and Prop_pq query an arbitrary property at (p, h) / (p, quality).
func (f Fluid) Prop_ph(want Prop, p, h float64) (float64, error) {
	return f.state(want, PropP, p, PropH, h)
}
func (f Fluid) Prop_pq(want Prop, p, q float64) (float64, error) {
	return f.state(want, PropP, p, PropQ, q)
}

func (f Fluid) Pcrit() (float64, error) { return f.O.Const(f.Name, PropPcrit) }
func (f Fluid) MolarMass() (float64, error) { return f.O.Const(f.Name, PropMolar) }

// Cp_ph returns cp at (p, h). Inside the dome cp is undefined; the source
// substituted cp at saturated liquid there, so keep exactly that fallback.
func (f Fluid) Cp_ph(p, h float64) (float64, error) {
	cp, err := f.O.State(f.Name, PropC, PropP, p, PropH, h)
	if err == nil {
		return cp, nil
	}
	if !errors.Is(err, ErrPropertyUndefined) {
		return 0, err
	}
	return f.state(PropC, PropP, p, PropQ, 0.0)
}

// Transport returns viscosity and conductivity at (p, h), substituting the
// saturated-liquid state when the two-phase query is undefined.
func (f Fluid) Transport(p, h float64) (mu, k float64, err error) {
	mu, err = f.O.State(f.Name, PropV, PropP, p, PropH, h)
	if err != nil {
		if !errors.Is(err, ErrPropertyUndefined) {
			return 0, 0, err
		}
		if mu, err = f.state(PropV, PropP, p, PropQ, 0.0); err != nil {
			return 0, 0, err
		}
	}
	k, err = f.O.State(f.Name, PropL, PropP, p, PropH, h)
	if err != nil {
		if !errors.Is(err, ErrPropertyUndefined) {
			return 0, 0, err
		}
		if k, err = f.state(PropL, PropP, p, PropQ, 0.0); err != nil {
			return 0, 0, err
		}
	}
	return mu, k, nil
}
