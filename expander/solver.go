package expander

import (
	"math"

	log "github.com/sirupsen/logrus"

	"orc/model"
	"orc/numeric"
	"orc/props"
)

// 膨胀机求解：效率族闭式求值，半经验模型用壁温能量平衡封闭

// Result is the structured solve outcome. Non-positive flags carry the
// documented fallback outputs.
type Result struct {
	Flag int `json:"flag"`

	WShaft      float64 `json:"w_shaft"`      // delivered shaft power [W]
	WInternal   float64 `json:"w_internal"`   // internal expansion power [W]
	WIsentropic float64 `json:"w_isentropic"` // reference isentropic power [W]
	EtaIs       float64 `json:"eta_is"`       // WShaft / WIsentropic

	Hex float64 `json:"h_ex"` // exhaust enthalpy [J/kg]
	Tex float64 `json:"t_ex"` // exhaust temperature [K]

	N             float64 `json:"n"`              // rotational speed [rpm]
	FillingFactor float64 `json:"filling_factor"` // [-]
	MdotLeak      float64 `json:"mdot_leak"`      // [kg/s]

	Qsu      float64 `json:"q_su"`  // supply-side wall exchange [W]
	Qex      float64 `json:"q_ex"`  // exhaust-side wall exchange [W]
	Qamb     float64 `json:"q_amb"` // ambient loss [W]
	Twall    float64 `json:"t_wall"`
	Residual float64 `json:"residual"`
}

// Solve runs the expander model for one supply state against exhaust pressure
// pex and ambient temperature tamb. A reversed pressure ratio yields the
// isentropic passthrough with a negative flag, never an error.
func Solve(o props.Oracle, su model.Stream, pex, tamb float64, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	f := props.Fluid{Name: su.Fluid, O: o}

	if su.Mdot <= 0 {
		return &Result{Flag: model.FlagNoFlow, N: cfg.N}, nil
	}

	var err error
	if su.Kind == model.SupplyTemperature {
		if su.H, err = f.H_pt(su.P, su.T); err != nil {
			return nil, err
		}
	} else if su.T, err = f.T_ph(su.P, su.H); err != nil {
		return nil, err
	}

	ssu, err := f.S_ph(su.P, su.H)
	if err != nil {
		return nil, err
	}
	hExS, err := f.H_ps(pex, ssu)
	if err != nil {
		return nil, err
	}
	tExS, err := f.T_ph(pex, hExS)
	if err != nil {
		return nil, err
	}
	wIs := su.Mdot * (su.H - hExS)

	if su.P <= pex {
		// reversed pressure ratio: lossless passthrough, no iteration
		return &Result{
			Flag:        model.FlagInfeasible,
			WShaft:      wIs,
			WInternal:   wIs,
			WIsentropic: wIs,
			EtaIs:       1,
			Hex:         hExS,
			Tex:         tExS,
			N:           cfg.N,
		}, nil
	}

	rhoSu, err := f.D_ph(su.P, su.H)
	if err != nil {
		return nil, err
	}

	switch s := cfg.Strategy.(type) {
	case ConstantEfficiency:
		return closedForm(f, su, pex, cfg, clamp01(s.Epsilon), cfg.N, wIs, hExS, rhoSu, model.FlagConverged)

	case PolyEfficiency:
		n, flag := cfg.N, model.FlagConverged
		balance := func(nn float64) (float64, error) {
			return numeric.Polyval(s.FFCoeffs, nn)*rhoSu*cfg.Vs*(nn/60) - su.Mdot, nil
		}
		res, err := numeric.Brent(balance, 300, 18000, 1e-3, 1e-9*su.Mdot, cfg.Solver.MaxIter)
		if err == numeric.ErrNoBracket {
			flag = model.FlagNotConverged
		} else if err != nil {
			return nil, err
		} else {
			n = res.Root
			if !res.Converged {
				flag = model.FlagNotConverged
			}
		}
		return closedForm(f, su, pex, cfg, clamp01(numeric.Polyval(s.EffCoeffs, n)), n, wIs, hExS, rhoSu, flag)

	case Semiempirical:
		return solveSemiempirical(f, s, su, pex, tamb, cfg, ssu, wIs)
	}
	return &Result{Flag: model.FlagNotConverged, N: cfg.N}, nil
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

// closedForm applies an isentropic effectiveness and reports the adiabatic
// exhaust state.
func closedForm(f props.Fluid, su model.Stream, pex float64, cfg Config, eff, n, wIs, hExS, rhoSu float64, flag int) (*Result, error) {
	w := eff * wIs
	hEx := su.H - w/su.Mdot
	tEx, err := f.T_ph(pex, hEx)
	if err != nil {
		return nil, err
	}
	if flag == model.FlagConverged && (hEx < cfg.HMin || hEx > cfg.HMax) {
		flag = model.FlagNotConverged
	}
	return &Result{
		Flag:          flag,
		WShaft:        w,
		WInternal:     w,
		WIsentropic:   wIs,
		EtaIs:         eff,
		Hex:           hEx,
		Tex:           tEx,
		N:             n,
		FillingFactor: su.Mdot / (rhoSu * cfg.Vs * (n / 60)),
	}, nil
}

func solveSemiempirical(f props.Fluid, s Semiempirical, su model.Stream, pex, tamb float64, cfg Config, ssu, wIs float64) (*Result, error) {
	m := &internalModel{
		f: f, s: s, cfg: cfg,
		psu: su.P, hsu: su.H, ssu: ssu,
		pex: pex, mdot: su.Mdot, tamb: tamb,
	}

	balance := func(tw float64) (float64, error) {
		r, _, err := m.wallBalance(tw)
		return r, err
	}
	lo := math.Min(tamb, su.T) - 50
	hi := math.Max(tamb, su.T) + 100
	tw := 0.5 * (lo + hi)
	converged := false
	res, err := numeric.Brent(balance, lo, hi, cfg.Solver.TolX, cfg.Solver.TolF, cfg.Solver.MaxIter)
	if err == numeric.ErrNoBracket {
		// no sign change, e.g. an adiabatic shell with mechanical losses:
		// report best effort at the initial guess
		log.WithField("residual", res.Residual).Warn("wall energy balance not bracketed, using initial wall-temperature guess")
	} else if err != nil {
		return nil, err
	} else {
		tw = res.Root
		converged = res.Converged
	}

	resid, c, err := m.wallBalance(tw)
	if err != nil {
		return nil, err
	}
	wSh := c.Wint - c.Wloss
	rhoSu1, err := f.D_ph(c.Psu1, c.Hsu1)
	if err != nil {
		return nil, err
	}

	flag := model.FlagConverged
	if !converged || c.Hex < cfg.HMin || c.Hex > cfg.HMax {
		flag = model.FlagNotConverged
	}
	etaIs := 0.0
	if wIs != 0 {
		etaIs = wSh / wIs
	}
	return &Result{
		Flag:          flag,
		WShaft:        wSh,
		WInternal:     c.Wint,
		WIsentropic:   wIs,
		EtaIs:         etaIs,
		Hex:           c.Hex,
		Tex:           c.Tex,
		N:             cfg.N,
		FillingFactor: su.Mdot / (rhoSu1 * cfg.Vs * (cfg.N / 60)),
		MdotLeak:      c.MdotLeak,
		Qsu:           c.Qsu,
		Qex:           c.Qex,
		Qamb:          c.Qamb,
		Twall:         tw,
		Residual:      resid,
	}, nil
}
