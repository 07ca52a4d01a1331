package hex

import (
	"math"
	"sort"

	"orc/model"
	"orc/props"
)

// 移动边界剖面：把两股逆流流体按相变点切成相内均匀的区段

// EndState is one stream's state at a zone boundary.
type EndState struct {
	H float64 `json:"h"` // [J/kg]
	T float64 `json:"t"` // [K]
	S float64 `json:"s"` // [J/kg-K], zero when unavailable
}

// Zone is one phase-homogeneous sub-interval of the duty axis. The "a" end
// is the low-duty end (cold inlet / hot outlet side of the counter-flow).
type Zone struct {
	Duty      float64     `json:"duty"`   // [W]
	FracA     float64     `json:"frac_a"` // cumulative duty fraction at the a end
	FracB     float64     `json:"frac_b"` // cumulative duty fraction at the b end
	HotPhase  props.Phase `json:"hot_phase"`
	ColdPhase props.Phase `json:"cold_phase"`

	HotA  EndState `json:"hot_a"`
	HotB  EndState `json:"hot_b"`
	ColdA EndState `json:"cold_a"`
	ColdB EndState `json:"cold_b"`
	DTa   float64  `json:"dt_a"` // approach temperature at the a end [K]
	DTb   float64  `json:"dt_b"` // approach temperature at the b end [K]
	LMTD  float64  `json:"lmtd"`

	// filled by the zone evaluator / mass inventory
	HotCoeff  float64 `json:"hot_coeff"`  // [W/m^2-K]
	ColdCoeff float64 `json:"cold_coeff"` // [W/m^2-K]
	EtaHot    float64 `json:"eta_hot"`
	EtaCold   float64 `json:"eta_cold"`
	U         float64 `json:"u"`         // overall, hot-side referenced [W/m^2-K]
	Area      float64 `json:"area"`      // required hot-side area [m^2]
	HotVol    float64 `json:"hot_vol"`   // [m^3]
	ColdVol   float64 `json:"cold_vol"`  // [m^3]
	HotMass   float64 `json:"hot_mass"`  // [kg]
	ColdMass  float64 `json:"cold_mass"` // [kg]
}

// Profile is the ordered zone sequence covering duty 0..Q.
type Profile struct {
	Q     float64
	Zones []Zone
	Pinch float64

	HotOutH, HotOutT   float64
	ColdOutH, ColdOutT float64
}

// builder holds the per-call stream context used by profile construction and
// the duty residual closures.
type builder struct {
	hot, cold       model.Stream // supply states resolved to enthalpy
	hotF, coldF     props.Fluid
	hotSat, coldSat props.SatCurve
	hotTsu, coldTsu float64
	floor           float64 // temperature-difference floor [K]
}

func newBuilder(o props.Oracle, hot, cold model.Stream, floor float64) (*builder, error) {
	b := &builder{
		hotF:  props.Fluid{Name: hot.Fluid, O: o},
		coldF: props.Fluid{Name: cold.Fluid, O: o},
		floor: floor,
	}
	var err error
	if b.hot, b.hotTsu, err = resolveSupply(b.hotF, hot); err != nil {
		return nil, err
	}
	if b.cold, b.coldTsu, err = resolveSupply(b.coldF, cold); err != nil {
		return nil, err
	}
	if b.hotSat, err = saturationOrIncomp(b.hotF, b.hot.P); err != nil {
		return nil, err
	}
	if b.coldSat, err = saturationOrIncomp(b.coldF, b.cold.P); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveSupply normalizes a stream to an enthalpy-fixed supply state.
func resolveSupply(f props.Fluid, s model.Stream) (model.Stream, float64, error) {
	if s.Kind == model.SupplyTemperature {
		h, err := f.H_pt(s.P, s.T)
		if err != nil {
			return s, 0, err
		}
		s.H = h
		s.Kind = model.SupplyEnthalpy
		return s, s.T, nil
	}
	t, err := f.T_ph(s.P, s.H)
	if err != nil {
		return s, 0, err
	}
	s.T = t
	return s, t, nil
}

// saturationOrIncomp treats a supercritical envelope query as "no envelope".
func saturationOrIncomp(f props.Fluid, p float64) (props.SatCurve, error) {
	sc, err := props.Saturation(f, p)
	if err != nil {
		if props.IsUndefined(err) {
			return props.SatCurve{Incomp: true}, nil
		}
		return props.SatCurve{}, err
	}
	return sc, nil
}

// lmtd floors the end differences and reduces to the common value when the
// ends are numerically equal, avoiding the log singularity.
func lmtd(dta, dtb, floor float64) float64 {
	if dta < floor {
		dta = floor
	}
	if dtb < floor {
		dtb = floor
	}
	if math.Abs(dta-dtb) < 1e-9 {
		return dta
	}
	return (dta - dtb) / math.Log(dta/dtb)
}

// profile builds the phase-segmented counter-flow profile for candidate duty q.
func (b *builder) profile(q float64) (*Profile, error) {
	p := &Profile{Q: q}
	mh, mc := b.hot.Mdot, b.cold.Mdot
	hHotEx := b.hot.H - q/mh
	hColdEx := b.cold.H + q/mc

	if q <= 0 {
		p.Pinch = b.hotTsu - b.coldTsu
		p.HotOutH, p.HotOutT = b.hot.H, b.hotTsu
		p.ColdOutH, p.ColdOutT = b.cold.H, b.coldTsu
		return p, nil
	}

	// breakpoints in cumulative-duty coordinates, 0 at the cold-inlet end
	cuts := []float64{0, q}
	addCut := func(x float64) {
		if x > 1e-9*q && x < q*(1-1e-9) {
			cuts = append(cuts, x)
		}
	}
	if !b.hotSat.Incomp {
		for _, hs := range []float64{b.hotSat.HsatL, b.hotSat.HsatV} {
			if hs > math.Min(hHotEx, b.hot.H) && hs < math.Max(hHotEx, b.hot.H) {
				addCut(mh * (hs - hHotEx))
			}
		}
	}
	if !b.coldSat.Incomp {
		for _, hs := range []float64{b.coldSat.HsatL, b.coldSat.HsatV} {
			if hs > math.Min(hColdEx, b.cold.H) && hs < math.Max(hColdEx, b.cold.H) {
				addCut(mc * (hs - b.cold.H))
			}
		}
	}
	sort.Float64s(cuts)

	type boundary struct {
		q          float64
		hHot, hCold float64
		tHot, tCold float64
		sHot, sCold float64
	}
	bounds := make([]boundary, 0, len(cuts))
	for _, x := range cuts {
		if len(bounds) > 0 && x-bounds[len(bounds)-1].q < 1e-9*q {
			continue
		}
		bd := boundary{q: x, hHot: hHotEx + x/mh, hCold: b.cold.H + x/mc}
		var err error
		if bd.tHot, err = b.hotF.T_ph(b.hot.P, bd.hHot); err != nil {
			return nil, err
		}
		if bd.tCold, err = b.coldF.T_ph(b.cold.P, bd.hCold); err != nil {
			return nil, err
		}
		// entropies are informational, skip silently when unavailable
		bd.sHot, _ = b.hotF.S_ph(b.hot.P, bd.hHot)
		bd.sCold, _ = b.coldF.S_ph(b.cold.P, bd.hCold)
		bounds = append(bounds, bd)
	}

	p.Pinch = math.Inf(1)
	for _, bd := range bounds {
		if dt := bd.tHot - bd.tCold; dt < p.Pinch {
			p.Pinch = dt
		}
	}

	for i := 0; i+1 < len(bounds); i++ {
		a, bb := bounds[i], bounds[i+1]
		z := Zone{
			Duty:      bb.q - a.q,
			FracA:     a.q / q,
			FracB:     bb.q / q,
			HotPhase:  b.hotSat.Classify(0.5 * (a.hHot + bb.hHot)),
			ColdPhase: b.coldSat.Classify(0.5 * (a.hCold + bb.hCold)),
			HotA:      EndState{H: a.hHot, T: a.tHot, S: a.sHot},
			HotB:      EndState{H: bb.hHot, T: bb.tHot, S: bb.sHot},
			ColdA:     EndState{H: a.hCold, T: a.tCold, S: a.sCold},
			ColdB:     EndState{H: bb.hCold, T: bb.tCold, S: bb.sCold},
			DTa:       a.tHot - a.tCold,
			DTb:       bb.tHot - bb.tCold,
		}
		z.LMTD = lmtd(z.DTa, z.DTb, b.floor)
		p.Zones = append(p.Zones, z)
	}

	first, last := bounds[0], bounds[len(bounds)-1]
	p.HotOutH, p.HotOutT = first.hHot, first.tHot
	p.ColdOutH, p.ColdOutT = last.hCold, last.tCold
	return p, nil
}
