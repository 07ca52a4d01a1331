package hex

import (
	"errors"
	"math"

	"orc/model"
	"orc/numeric"
	"orc/props"
)

// 换热器求解：先求最大换热量（夹点为零），再按模型族确定有效换热量

// Outlet is one side's exit state.
type Outlet struct {
	P float64 `json:"p"`
	H float64 `json:"h"`
	T float64 `json:"t"`
}

// Result is the structured solve outcome. The flag semantics follow the
// model package constants; any non-positive flag marks the outputs as a
// best-effort fallback.
type Result struct {
	Flag     int     `json:"flag"`
	Q        float64 `json:"q"`     // effective duty [W]
	QMax     float64 `json:"q_max"` // zero-pinch duty bound [W]
	Pinch    float64 `json:"pinch"` // minimum approach of the final profile [K]
	Residual float64 `json:"residual"`

	HotOut  Outlet `json:"hot_out"`
	ColdOut Outlet `json:"cold_out"`

	Zones    []Zone  `json:"zones"`
	HotMass  float64 `json:"hot_mass"`  // retained mass [kg]
	ColdMass float64 `json:"cold_mass"` // retained mass [kg]

	Swapped bool `json:"swapped"` // stream roles were normalized
}

// Solve runs the moving-boundary model for one pair of counter-flow streams.
// Physically infeasible boundary conditions yield a populated zero-duty
// result with a negative flag, never an error.
func Solve(o props.Oracle, hot, cold model.Stream, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	if hot.Mdot <= 0 || cold.Mdot <= 0 {
		return passthrough(o, hot, cold, cfg, model.FlagNoFlow)
	}

	b, err := newBuilder(o, hot, cold, cfg.Solver.PinchFloor)
	if err != nil {
		return nil, err
	}

	dt := b.hotTsu - b.coldTsu
	switch {
	case math.Abs(dt) <= cfg.Solver.TempMargin:
		return passthrough(o, hot, cold, cfg, model.FlagPassthrough)
	case dt < 0:
		if !cfg.NormalizeRoles {
			return passthrough(o, hot, cold, cfg, model.FlagInfeasible)
		}
		res, err := Solve(o, cold, hot, swapConfig(cfg))
		if err != nil {
			return nil, err
		}
		swapResult(res)
		return res, nil
	}

	if isAreaMatching(cfg.Strategy) && cfg.Hot.Area <= 0 {
		return nil, errors.New("area-matching strategy requires a positive hot-side area")
	}

	qmax, zeroPinch, err := b.maxDuty(cfg)
	if err != nil {
		return nil, err
	}
	if qmax <= 0 {
		return passthrough(o, hot, cold, cfg, model.FlagInfeasible)
	}

	ev := &evaluator{b: b, cfg: cfg}
	var (
		q        float64
		flag     int
		residual float64
	)

	switch s := cfg.Strategy.(type) {
	case FixedEfficiency:
		q = clamp01(s.Epsilon) * qmax
		flag = closedFormFlag(zeroPinch)

	case PolyEfficiency:
		q = clamp01(numeric.Polyval(s.Coeffs, cold.Mdot)) * qmax
		flag = closedFormFlag(zeroPinch)

	case PinchPoint:
		f := func(qq float64) (float64, error) {
			p, err := b.profile(qq)
			if err != nil {
				return 0, err
			}
			return p.Pinch - s.DeltaT, nil
		}
		res, err := numeric.Brent(f, 0, qmax, 1e-6*qmax, 1e-3, cfg.Solver.MaxIter)
		if err == numeric.ErrNoBracket {
			if res.Residual > 0 {
				// even the zero-pinch bound stays wider than the target
				q, flag, residual = qmax, model.FlagDutyLimited, res.Residual
			} else {
				// the supply approach is already tighter than the target
				q, flag = 0, model.FlagInfeasible
			}
		} else if err != nil {
			return nil, err
		} else {
			q, residual = res.Root, res.Residual
			flag = model.FlagConverged
			if !res.Converged {
				flag = model.FlagNotConverged
			}
		}

	case ConstantU, ScaledU, CorrelatedU:
		rMax, _, err := ev.areaResidual(qmax)
		if err != nil {
			return nil, err
		}
		if rMax > 0 {
			// undersizing never occurs even at the pinch bound: saturate
			q, flag, residual = qmax, model.FlagDutyLimited, rMax
		} else {
			f := func(qq float64) (float64, error) {
				r, _, err := ev.areaResidual(qq)
				return r, err
			}
			res, err := numeric.Brent(f, 0, qmax, 1e-6*qmax, cfg.Solver.TolF, cfg.Solver.MaxIter)
			if err != nil {
				return nil, err
			}
			q, residual = res.Root, res.Residual
			flag = model.FlagConverged
			if !res.Converged || math.Abs(residual) > cfg.Solver.TolF {
				flag = model.FlagNotConverged
			}
		}
	}

	prof, err := b.profile(q)
	if err != nil {
		return nil, err
	}
	if isAreaMatching(cfg.Strategy) {
		for i := range prof.Zones {
			if err := ev.evalZone(&prof.Zones[i]); err != nil {
				return nil, err
			}
		}
	}
	hotMass, coldMass, err := inventory(b, cfg, prof)
	if err != nil {
		return nil, err
	}

	return &Result{
		Flag:     flag,
		Q:        q,
		QMax:     qmax,
		Pinch:    prof.Pinch,
		Residual: residual,
		HotOut:   Outlet{P: b.hot.P, H: prof.HotOutH, T: prof.HotOutT},
		ColdOut:  Outlet{P: b.cold.P, H: prof.ColdOutH, T: prof.ColdOutT},
		Zones:    prof.Zones,
		HotMass:  hotMass,
		ColdMass: coldMass,
	}, nil
}

func closedFormFlag(zeroPinch bool) int {
	if zeroPinch {
		return model.FlagConverged
	}
	// efficiency model invoked on a profile whose pinch never closes
	return model.FlagInfeasible
}

func isAreaMatching(s Strategy) bool {
	switch s.(type) {
	case ConstantU, ScaledU, CorrelatedU:
		return true
	}
	return false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// maxDuty finds the zero-pinch duty bounded by the enthalpy-limited duty of
// either stream, never by unguarded search. The bool reports whether the
// pinch actually closes at the bound (within the floor).
func (b *builder) maxDuty(cfg Config) (float64, bool, error) {
	hHotMin, err := b.hotF.H_pt(b.hot.P, b.coldTsu)
	if err != nil {
		return 0, false, err
	}
	hHotMin = math.Max(hHotMin, cfg.HMin)
	hColdMax, err := b.coldF.H_pt(b.cold.P, b.hotTsu)
	if err != nil {
		return 0, false, err
	}
	hColdMax = math.Min(hColdMax, cfg.HMax)

	qlim := math.Min(
		b.hot.Mdot*(b.hot.H-hHotMin),
		b.cold.Mdot*(hColdMax-b.cold.H),
	)
	if qlim <= 0 {
		return 0, false, nil
	}

	pinch := func(q float64) (float64, error) {
		p, err := b.profile(q)
		if err != nil {
			return 0, err
		}
		return p.Pinch, nil
	}
	pLim, err := pinch(qlim)
	if err != nil {
		return 0, false, err
	}
	if pLim > b.floor {
		// profiles never touch: the enthalpy limit is the bound
		return qlim, false, nil
	}
	res, err := numeric.Brent(pinch, 0, qlim, 1e-6*qlim, b.floor, cfg.Solver.MaxIter)
	if err != nil {
		return 0, false, err
	}
	return res.Root, res.Converged && math.Abs(res.Residual) < 1e-2, nil
}

// inventory fills per-zone retained volume and mass and returns both sides'
// totals. Two-phase zones weight the phase densities with the void-fraction
// correlation; volume splits follow required area when known, duty fraction
// otherwise.
func inventory(b *builder, cfg Config, p *Profile) (hotMass, coldMass float64, err error) {
	totalArea := 0.0
	for i := range p.Zones {
		totalArea += p.Zones[i].Area
	}
	for i := range p.Zones {
		z := &p.Zones[i]
		share := z.FracB - z.FracA
		if totalArea > 0 {
			share = z.Area / totalArea
		}
		z.HotVol = cfg.Hot.Volume * share
		z.ColdVol = cfg.Cold.Volume * share

		rhoH, err := zoneDensity(b.hotF, b.hot.P, b.hotSat, z.HotPhase, z.HotA.H, z.HotB.H, cfg.Slip)
		if err != nil {
			return 0, 0, err
		}
		rhoC, err := zoneDensity(b.coldF, b.cold.P, b.coldSat, z.ColdPhase, z.ColdA.H, z.ColdB.H, cfg.Slip)
		if err != nil {
			return 0, 0, err
		}
		z.HotMass = rhoH * z.HotVol
		z.ColdMass = rhoC * z.ColdVol
		hotMass += z.HotMass
		coldMass += z.ColdMass
	}
	return hotMass, coldMass, nil
}

func zoneDensity(f props.Fluid, p float64, sat props.SatCurve, phase props.Phase, hA, hB float64, slip props.SlipModel) (float64, error) {
	if phase == props.PhaseTwoPhase {
		xa, xb := sat.Quality(hA), sat.Quality(hB)
		if xa > xb {
			xa, xb = xb, xa
		}
		return props.TwoPhaseDensity(f, p, xa, xb, slip)
	}
	return f.D_ph(p, 0.5*(hA+hB))
}

// passthrough assembles the documented zero-duty fallback result.
func passthrough(o props.Oracle, hot, cold model.Stream, cfg Config, flag int) (*Result, error) {
	hf := props.Fluid{Name: hot.Fluid, O: o}
	cf := props.Fluid{Name: cold.Fluid, O: o}
	res := &Result{Flag: flag}

	hs, ht, err := resolveSupply(hf, hot)
	if err != nil {
		return nil, err
	}
	cs, ct, err := resolveSupply(cf, cold)
	if err != nil {
		return nil, err
	}
	res.HotOut = Outlet{P: hs.P, H: hs.H, T: ht}
	res.ColdOut = Outlet{P: cs.P, H: cs.H, T: ct}
	res.Pinch = ht - ct
	if rho, err := hf.D_ph(hs.P, hs.H); err == nil {
		res.HotMass = rho * cfg.Hot.Volume
	}
	if rho, err := cf.D_ph(cs.P, cs.H); err == nil {
		res.ColdMass = rho * cfg.Cold.Volume
	}
	return res, nil
}

// swapConfig exchanges the hot/cold geometry and strategy coefficients for a
// role-normalized re-solve.
func swapConfig(cfg Config) Config {
	cfg.Hot, cfg.Cold = cfg.Cold, cfg.Hot
	switch s := cfg.Strategy.(type) {
	case ConstantU:
		s.Hot, s.Cold = s.Cold, s.Hot
		cfg.Strategy = s
	case ScaledU:
		s.Hot, s.Cold = s.Cold, s.Hot
		s.MdotNominalHot, s.MdotNominalCold = s.MdotNominalCold, s.MdotNominalHot
		cfg.Strategy = s
	case CorrelatedU:
		s.Hot, s.Cold = s.Cold, s.Hot
		cfg.Strategy = s
	}
	return cfg
}

// swapResult restores the caller's declared stream roles after a normalized
// solve: per-zone side fields exchanged, approach differences restated in the
// caller's hot-minus-cold sign convention.
func swapResult(r *Result) {
	r.Swapped = true
	r.HotOut, r.ColdOut = r.ColdOut, r.HotOut
	r.HotMass, r.ColdMass = r.ColdMass, r.HotMass
	r.Pinch = -r.Pinch
	for i := range r.Zones {
		z := &r.Zones[i]
		z.HotA, z.ColdA = z.ColdA, z.HotA
		z.HotB, z.ColdB = z.ColdB, z.HotB
		z.HotPhase, z.ColdPhase = z.ColdPhase, z.HotPhase
		z.HotCoeff, z.ColdCoeff = z.ColdCoeff, z.HotCoeff
		z.EtaHot, z.EtaCold = z.EtaCold, z.EtaHot
		z.HotVol, z.ColdVol = z.ColdVol, z.HotVol
		z.HotMass, z.ColdMass = z.ColdMass, z.HotMass
		z.DTa, z.DTb = -z.DTa, -z.DTb
	}
}
