package props

import (
	"math"
)

// 内置理想化物性库：饱和线用 Clausius–Clapeyron，潜热用 Watson 缩放，
// 气相按理想气体，液相近似不可压缩。接口与外部物性后端完全一致，
// 求解器核心只依赖 Oracle，不依赖这里的具体流体模型。

const (
	gasConstant = 8.31446 // [J/mol-K]
	tRef        = 273.15  // liquid enthalpy reference [K]
	hRef        = 200.0e3 // h_liquid(tRef) [J/kg], IIR convention
	sRef        = 1000.0  // s_liquid(tRef) [J/kg-K], IIR convention
)

type refFluid struct {
	incomp bool

	// incompressible branch
	cpI, rhoI, muI, kI float64

	// refrigerant branch
	m          float64 // molar mass [kg/mol]
	tc, pc     float64 // critical point [K], [Pa]
	tb         float64 // normal boiling point [K]
	cpL, cpV   float64 // specific heats [J/kg-K]
	hfg0       float64 // latent heat at tRef [J/kg]
	rhoL0      float64 // liquid density at tRef [kg/m^3]
	betaL      float64 // liquid expansivity [1/K]
	muL, muV   float64 // viscosities [Pa-s]
	kL, kV     float64 // conductivities [W/m-K]
	sigma0     float64 // surface tension scale [N/m]
}

// RefOracle is the in-process reference property backend used by the demo
// server and the test-suite. Deterministic and reentrant.
type RefOracle struct {
	fluids map[string]refFluid
}

// NewRefOracle returns a backend carrying the demo fluids: an R245fa-like
// refrigerant, an R717-like refrigerant and the INCOMP::T66 thermal oil.
func NewRefOracle() *RefOracle {
	return &RefOracle{fluids: map[string]refFluid{
		"R245fa": {
			m: 0.134048, tc: 427.16, pc: 3.651e6, tb: 288.29,
			cpL: 1322, cpV: 980, hfg0: 196.0e3,
			rhoL0: 1404, betaL: 0.0020,
			muL: 5.3e-4, muV: 1.05e-5, kL: 0.091, kV: 0.0125,
			sigma0: 0.059,
		},
		"R717": {
			m: 0.017031, tc: 405.40, pc: 1.1333e7, tb: 239.82,
			cpL: 4700, cpV: 2700, hfg0: 1262.0e3,
			rhoL0: 638.6, betaL: 0.0025,
			muL: 1.7e-4, muV: 9.2e-6, kL: 0.54, kV: 0.025,
			sigma0: 0.110,
		},
		"INCOMP::T66": {
			incomp: true,
			cpI:    2100, rhoI: 980, muI: 8.6e-3, kI: 0.115,
		},
	}}
}

func (o *RefOracle) Incompressible(fluid string) bool {
	f, ok := o.fluids[fluid]
	return ok && f.incomp
}

func (o *RefOracle) Const(fluid string, want Prop) (float64, error) {
	f, ok := o.fluids[fluid]
	if !ok {
		return 0, ErrUnknownFluid
	}
	switch want {
	case PropPcrit:
		if f.incomp {
			return 0, ErrPropertyUndefined
		}
		return f.pc, nil
	case PropMolar:
		if f.incomp {
			return 0, ErrPropertyUndefined
		}
		return f.m, nil
	}
	return 0, ErrPropertyUndefined
}

// clausiusB is the slope of ln(Psat) vs 1/T fixed by (tb, 1 atm) and (tc, pc).
func (f refFluid) clausiusB() float64 {
	return math.Log(f.pc/101325.0) / (1.0/f.tb - 1.0/f.tc)
}

func (f refFluid) psat(t float64) float64 {
	return 101325.0 * math.Exp(f.clausiusB()*(1.0/f.tb-1.0/t))
}

func (f refFluid) tsat(p float64) float64 {
	return 1.0 / (1.0/f.tb - math.Log(p/101325.0)/f.clausiusB())
}

// hfg follows the Watson scaling from the reference-temperature latent heat.
func (f refFluid) hfg(t float64) float64 {
	if t >= f.tc {
		return 0
	}
	return f.hfg0 * math.Pow((f.tc-t)/(f.tc-tRef), 0.38)
}

func (f refFluid) hLiq(t float64) float64 { return hRef + f.cpL*(t-tRef) }
func (f refFluid) sLiq(t float64) float64 { return sRef + f.cpL*math.Log(t/tRef) }

func (f refFluid) rhoLiq(t float64) float64 { return f.rhoL0 * (1 - f.betaL*(t-tRef)) }

func (f refFluid) rhoVap(p, t float64) float64 { return p * f.m / (gasConstant * t) }

func (f refFluid) sigma(t float64) float64 {
	if t >= f.tc {
		return 0
	}
	return f.sigma0 * math.Pow(1-t/f.tc, 1.26)
}

func (o *RefOracle) State(fluid string, want Prop, in1 Prop, v1 float64, in2 Prop, v2 float64) (float64, error) {
	f, ok := o.fluids[fluid]
	if !ok {
		return 0, ErrUnknownFluid
	}
	// canonical input pair ordering
	a, va, b, vb := in1, v1, in2, v2
	if a > b {
		a, va, b, vb = b, vb, a, va
	}
	if f.incomp {
		return f.stateIncomp(want, a, va, b, vb)
	}
	switch {
	case a == PropH && b == PropP:
		return f.statePH(want, vb, va)
	case a == PropP && b == PropT:
		return f.statePT(want, va, vb)
	case a == PropP && b == PropQ:
		return f.statePQ(want, va, vb)
	case a == PropP && b == PropS:
		return f.statePS(want, va, vb)
	case a == PropQ && b == PropT:
		return f.statePQ(want, f.psat(vb), va)
	}
	return 0, ErrPropertyUndefined
}

func (f refFluid) stateIncomp(want Prop, a Prop, va float64, b Prop, vb float64) (float64, error) {
	var t float64
	switch {
	case a == PropH && b == PropP:
		t = tRef + va/f.cpI
	case a == PropP && b == PropT:
		t = vb
	case a == PropP && b == PropS:
		t = tRef * math.Exp(vb/f.cpI)
	default:
		// no saturation envelope on an incompressible fluid
		return 0, ErrPropertyUndefined
	}
	switch want {
	case PropT:
		return t, nil
	case PropH:
		return f.cpI * (t - tRef), nil
	case PropD:
		return f.rhoI, nil
	case PropS:
		return f.cpI * math.Log(t/tRef), nil
	case PropC:
		return f.cpI, nil
	case PropV:
		return f.muI, nil
	case PropL:
		return f.kI, nil
	}
	return 0, ErrPropertyUndefined
}

func (f refFluid) statePH(want Prop, p, h float64) (float64, error) {
	if p >= f.pc {
		return 0, ErrPropertyUndefined
	}
	ts := f.tsat(p)
	hl, hv := f.hLiq(ts), f.hLiq(ts)+f.hfg(ts)
	switch {
	case h <= hl: // subcooled
		t := tRef + (h-hRef)/f.cpL
		return f.singlePhase(want, p, t, h, false)
	case h >= hv: // superheated
		t := ts + (h-hv)/f.cpV
		return f.singlePhase(want, p, t, h, true)
	}
	x := (h - hl) / (1.0e-6 + hv - hl)
	return f.twoPhase(want, p, ts, x)
}

func (f refFluid) statePT(want Prop, p, t float64) (float64, error) {
	if p >= f.pc {
		return 0, ErrPropertyUndefined
	}
	ts := f.tsat(p)
	if t > ts {
		h := f.hLiq(ts) + f.hfg(ts) + f.cpV*(t-ts)
		return f.singlePhase(want, p, t, h, true)
	}
	return f.singlePhase(want, p, t, f.hLiq(t), false)
}

func (f refFluid) statePQ(want Prop, p, q float64) (float64, error) {
	if p >= f.pc || q < 0 || q > 1 {
		return 0, ErrPropertyUndefined
	}
	return f.twoPhase(want, p, f.tsat(p), q)
}

func (f refFluid) statePS(want Prop, p, s float64) (float64, error) {
	if p >= f.pc {
		return 0, ErrPropertyUndefined
	}
	ts := f.tsat(p)
	sl := f.sLiq(ts)
	sv := sl + f.hfg(ts)/ts
	switch {
	case s <= sl:
		t := tRef * math.Exp((s-sRef)/f.cpL)
		return f.singlePhase(want, p, t, f.hLiq(t), false)
	case s >= sv:
		t := ts * math.Exp((s-sv)/f.cpV)
		h := f.hLiq(ts) + f.hfg(ts) + f.cpV*(t-ts)
		return f.singlePhase(want, p, t, h, true)
	}
	x := (s - sl) / ((sv - sl) + 1.0e-12)
	return f.twoPhase(want, p, ts, x)
}

func (f refFluid) singlePhase(want Prop, p, t, h float64, vapor bool) (float64, error) {
	switch want {
	case PropT:
		return t, nil
	case PropH:
		return h, nil
	case PropD:
		if vapor {
			return f.rhoVap(p, t), nil
		}
		return f.rhoLiq(t), nil
	case PropS:
		if vapor {
			ts := f.tsat(p)
			return f.sLiq(ts) + f.hfg(ts)/ts + f.cpV*math.Log(t/ts), nil
		}
		return f.sLiq(t), nil
	case PropC:
		if vapor {
			return f.cpV, nil
		}
		return f.cpL, nil
	case PropV:
		if vapor {
			return f.muV, nil
		}
		return f.muL, nil
	case PropL:
		if vapor {
			return f.kV, nil
		}
		return f.kL, nil
	case PropSigma:
		return f.sigma(t), nil
	case PropQ:
		return 0, ErrPropertyUndefined
	}
	return 0, ErrPropertyUndefined
}

func (f refFluid) twoPhase(want Prop, p, ts, x float64) (float64, error) {
	switch want {
	case PropT:
		return ts, nil
	case PropH:
		return f.hLiq(ts) + x*f.hfg(ts), nil
	case PropQ:
		return x, nil
	case PropD:
		v := x/f.rhoVap(p, ts) + (1-x)/f.rhoLiq(ts)
		return 1 / v, nil
	case PropS:
		return f.sLiq(ts) + x*f.hfg(ts)/ts, nil
	case PropSigma:
		return f.sigma(ts), nil
	case PropC:
		if x <= 0 {
			return f.cpL, nil
		}
		if x >= 1 {
			return f.cpV, nil
		}
		// cp diverges inside the dome
		return 0, ErrPropertyUndefined
	case PropV:
		if x <= 0 {
			return f.muL, nil
		}
		if x >= 1 {
			return f.muV, nil
		}
		return 0, ErrPropertyUndefined
	case PropL:
		if x <= 0 {
			return f.kL, nil
		}
		if x >= 1 {
			return f.kV, nil
		}
		return 0, ErrPropertyUndefined
	}
	return 0, ErrPropertyUndefined
}
