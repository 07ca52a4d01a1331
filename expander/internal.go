package expander

import (
	"math"

	log "github.com/sirupsen/logrus"

	"orc/numeric"
	"orc/props"
)

// 半经验内部状态链：su → su1（喷嘴）→ su2（壁面换热）→ 内部膨胀与泄漏 → ex1 → ex

const universalGas = 8.31446 // [J/mol-K]

// chain holds the internal state sequence and energy flows evaluated at one
// candidate wall temperature.
type chain struct {
	Psu1, Hsu1, Tsu1 float64
	Hsu2, Tsu2       float64
	Ssu2, RhoSu2     float64

	Qsu      float64 // fluid-to-wall, supply side [W]
	MdotLeak float64 // [kg/s]

	Pint, Hint, RhoInt float64
	Wint               float64 // internal expansion power [W]
	Wloss              float64 // mechanical losses [W]

	Hex1, Tex1 float64
	Qex        float64 // wall-to-fluid, exhaust side [W]
	Hex, Tex   float64
	Qamb       float64 // wall-to-ambient [W]
}

type internalModel struct {
	f    props.Fluid
	s    Semiempirical
	cfg  Config
	psu  float64
	hsu  float64
	ssu  float64
	pex  float64
	mdot float64
	tamb float64
}

// conductance scales the nominal AU with the flow-rate power law.
func (m *internalModel) conductance(au float64) float64 {
	mn := m.s.MdotNominal
	if mn <= 0 {
		mn = m.mdot
	}
	return au * math.Pow(m.mdot/mn, 0.8)
}

// nozzle resolves the supply pressure drop through the port throat: the
// pressure at which the isentropic throat velocity carries exactly the mass
// flow. The kinetic energy dissipates in the suction chamber, so total
// enthalpy is conserved across the drop. An undersized port that cannot pass
// the flow keeps the supply pressure.
func (m *internalModel) nozzle() (float64, error) {
	if m.s.Asu <= 0 {
		return m.psu, nil
	}
	residual := func(p float64) (float64, error) {
		h, err := m.f.H_ps(p, m.ssu)
		if err != nil {
			return 0, err
		}
		rho, err := m.f.D_ps(p, m.ssu)
		if err != nil {
			return 0, err
		}
		v := math.Sqrt(2 * math.Max(m.hsu-h, 0))
		return m.mdot - rho*m.s.Asu*v, nil
	}
	res, err := numeric.Brent(residual, m.pex, m.psu, 1e-6*m.psu, 1e-6*m.mdot, m.cfg.Solver.MaxIter)
	if err == numeric.ErrNoBracket {
		log.WithField("asu", m.s.Asu).Warn("supply port cannot pass the mass flow, skipping nozzle drop")
		return m.psu, nil
	}
	if err != nil {
		return 0, err
	}
	return res.Root, nil
}

// gamma estimates the isentropic exponent from cp and the gas constant.
func (m *internalModel) gamma(p, h float64) (float64, error) {
	cp, err := m.f.Cp_ph(p, h)
	if err != nil {
		return 0, err
	}
	mm, err := m.f.MolarMass()
	if err != nil {
		return 0, err
	}
	r := universalGas / mm
	if cp <= r {
		return 1.3, nil
	}
	return cp / (cp - r), nil
}

// evaluate runs the full state chain at wall temperature tw.
func (m *internalModel) evaluate(tw float64) (*chain, error) {
	c := &chain{}
	var err error

	if c.Psu1, err = m.nozzle(); err != nil {
		return nil, err
	}
	c.Hsu1 = m.hsu
	if c.Tsu1, err = m.f.T_ph(c.Psu1, c.Hsu1); err != nil {
		return nil, err
	}

	// isobaric supply-side wall exchange
	cpSu, err := m.f.Cp_ph(c.Psu1, c.Hsu1)
	if err != nil {
		return nil, err
	}
	ntu := m.conductance(m.s.AUsu) / (m.mdot * cpSu)
	eps := 1 - math.Exp(-ntu)
	c.Qsu = eps * m.mdot * cpSu * (c.Tsu1 - tw)
	c.Hsu2 = c.Hsu1 - c.Qsu/m.mdot
	if c.Tsu2, err = m.f.T_ph(c.Psu1, c.Hsu2); err != nil {
		return nil, err
	}
	if c.Ssu2, err = m.f.S_ph(c.Psu1, c.Hsu2); err != nil {
		return nil, err
	}
	if c.RhoSu2, err = m.f.D_ph(c.Psu1, c.Hsu2); err != nil {
		return nil, err
	}

	// leakage through the internal clearances, choked-flow limited
	gam, err := m.gamma(c.Psu1, c.Hsu2)
	if err != nil {
		return nil, err
	}
	pCrit := c.Psu1 * math.Pow(2/(gam+1), gam/(gam-1))
	pThr := math.Max(m.pex, pCrit)
	hThr, err := m.f.H_ps(pThr, c.Ssu2)
	if err != nil {
		return nil, err
	}
	rhoThr, err := m.f.D_ps(pThr, c.Ssu2)
	if err != nil {
		return nil, err
	}
	vThr := math.Sqrt(2 * math.Max(c.Hsu2-hThr, 0))
	c.MdotLeak = math.Min(m.s.Aleak*rhoThr*vThr, m.mdot)
	mdotIn := m.mdot - c.MdotLeak

	// two-step expansion: isentropic to the built-in volume ratio, then
	// constant-volume pressure equalization to the exhaust line
	c.RhoInt = c.RhoSu2 / m.s.Rv
	c.Pint, err = m.internalPressure(c, gam)
	if err != nil {
		return nil, err
	}
	if c.Hint, err = m.f.H_ps(c.Pint, c.Ssu2); err != nil {
		return nil, err
	}
	wExp := (c.Hsu2 - c.Hint) + (c.Pint-m.pex)/c.RhoInt
	c.Wint = mdotIn * wExp
	c.Wloss = m.s.Alpha*c.Wint + m.s.Wdot0 + 2*math.Pi*(m.cfg.N/60)*m.s.Tloss

	// exhaust mixing of the expanded and leaked streams
	hEx2 := c.Hsu2 - wExp
	c.Hex1 = (mdotIn*hEx2 + c.MdotLeak*c.Hsu2) / m.mdot
	if c.Tex1, err = m.f.T_ph(m.pex, c.Hex1); err != nil {
		return nil, err
	}

	// isobaric exhaust-side wall exchange
	cpEx, err := m.f.Cp_ph(m.pex, c.Hex1)
	if err != nil {
		return nil, err
	}
	ntuEx := m.conductance(m.s.AUex) / (m.mdot * cpEx)
	epsEx := 1 - math.Exp(-ntuEx)
	c.Qex = epsEx * m.mdot * cpEx * (tw - c.Tex1)
	c.Hex = c.Hex1 + c.Qex/m.mdot
	if c.Tex, err = m.f.T_ph(m.pex, c.Hex); err != nil {
		return nil, err
	}

	c.Qamb = m.s.AUamb * (tw - m.tamb)
	return c, nil
}

// internalPressure inverts the density at the built-in expansion endpoint
// along the su2 isentrope, falling back to the polytropic estimate when the
// backend cannot bracket it.
func (m *internalModel) internalPressure(c *chain, gam float64) (float64, error) {
	residual := func(p float64) (float64, error) {
		rho, err := m.f.D_ps(p, c.Ssu2)
		if err != nil {
			return 0, err
		}
		return rho - c.RhoInt, nil
	}
	lo := 0.05 * m.pex
	res, err := numeric.Brent(residual, lo, c.Psu1, 1e-6*c.Psu1, 1e-6*c.RhoInt, m.cfg.Solver.MaxIter)
	if err == numeric.ErrNoBracket || (err == nil && !res.Converged) {
		return c.Psu1 * math.Pow(m.s.Rv, -gam), nil
	}
	if err != nil {
		return 0, err
	}
	return res.Root, nil
}

// wallBalance is the normalized wall energy residual closed by Solve.
func (m *internalModel) wallBalance(tw float64) (float64, *chain, error) {
	c, err := m.evaluate(tw)
	if err != nil {
		return 0, nil, err
	}
	denom := math.Max(math.Abs(c.Qsu)+math.Abs(c.Wloss), 1)
	return (c.Qsu + c.Wloss - c.Qex - c.Qamb) / denom, c, nil
}
