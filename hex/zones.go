package hex

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"orc/correlations"
	"orc/numeric"
	"orc/props"
)

// 区段评估：逐区段求对流系数、翅片效率、总传热系数和所需面积

type evaluator struct {
	b   *builder
	cfg Config
}

// sideCtx bundles what the coefficient dispatch needs for one side of a zone.
type sideCtx struct {
	stream props.Fluid
	p      float64
	mdot   float64
	sat    props.SatCurve
	side   Side
	hot    bool // hot side condenses in two-phase zones, cold side boils
	phase  props.Phase
	hMean  float64
	xA, xB float64
}

// fluxDependent reports whether the side's two-phase correlation needs the
// local heat flux, i.e. whether the boiling-number closure applies.
func (e *evaluator) fluxDependent(sc SideCorrelations, ctx sideCtx) bool {
	if ctx.phase != props.PhaseTwoPhase || ctx.hot {
		return false
	}
	return sc.Boiling == CorrCooper || sc.Boiling == CorrKandlikar || sc.Boiling == CorrShahEvap
}

// massFlux is referenced to the side's parallel flow passages.
func (e *evaluator) massFlux(ctx sideCtx) float64 {
	if ctx.side.TubeID > 0 {
		return ctx.mdot / (float64(ctx.side.Gaps) * math.Pi * ctx.side.TubeID * ctx.side.TubeID / 4)
	}
	geo := e.cfg.Plate.Geometry()
	return ctx.mdot / (float64(ctx.side.Gaps) * geo.Aflow)
}

// coeff returns the convective coefficient of one side of one zone; qflux is
// only consulted by flux-dependent boiling correlations.
func (e *evaluator) coeff(ctx sideCtx, qflux float64) (float64, error) {
	switch s := e.cfg.Strategy.(type) {
	case ConstantU:
		if ctx.hot {
			return s.Hot.forPhase(ctx.phase), nil
		}
		return s.Cold.forPhase(ctx.phase), nil

	case ScaledU:
		var u, mn float64
		if ctx.hot {
			u, mn = s.Hot.forPhase(ctx.phase), s.MdotNominalHot
		} else {
			u, mn = s.Cold.forPhase(ctx.phase), s.MdotNominalCold
		}
		if mn <= 0 {
			mn = ctx.mdot
		}
		return u * math.Pow(ctx.mdot/mn, s.Exponent), nil

	case CorrelatedU:
		sc := s.Cold
		if ctx.hot {
			sc = s.Hot
		}
		if ctx.phase == props.PhaseTwoPhase {
			return e.twoPhaseCoeff(sc, ctx, qflux)
		}
		return e.singlePhaseCoeff(sc, ctx)
	}
	return 0, fmt.Errorf("strategy %T carries no convective coefficients", e.cfg.Strategy)
}

func (e *evaluator) singlePhaseCoeff(sc SideCorrelations, ctx sideCtx) (float64, error) {
	rho, err := ctx.stream.D_ph(ctx.p, ctx.hMean)
	if err != nil {
		return 0, err
	}
	cp, err := ctx.stream.Cp_ph(ctx.p, ctx.hMean)
	if err != nil {
		return 0, err
	}
	mu, k, err := ctx.stream.Transport(ctx.p, ctx.hMean)
	if err != nil {
		return 0, err
	}
	mdotPassage := ctx.mdot / float64(ctx.side.Gaps)
	switch sc.SinglePhase {
	case CorrMartinPlate:
		h, _, _ := e.cfg.Plate.SinglePhase(mdotPassage, rho, mu, cp, k)
		return h, nil
	case CorrGnielinskiChannel:
		_, h, _ := correlations.Channel(mdotPassage, e.cfg.Plate.Bp, 2*e.cfg.Plate.Amplitude, rho, mu, cp, k)
		return h, nil
	case CorrGnielinskiTube:
		_, h, _ := correlations.Tube(mdotPassage, ctx.side.TubeID, rho, mu, cp, k)
		return h, nil
	}
	return 0, fmt.Errorf("correlation %d is not single-phase", sc.SinglePhase)
}

func (e *evaluator) twoPhaseCoeff(sc SideCorrelations, ctx sideCtx, qflux float64) (float64, error) {
	g := e.massFlux(ctx)
	dh := ctx.side.TubeID
	if dh <= 0 {
		dh = e.cfg.Plate.Geometry().Dh
	}
	rhoL, err := ctx.stream.D_pq(ctx.p, 0)
	if err != nil {
		return 0, err
	}
	rhoV, err := ctx.stream.D_pq(ctx.p, 1)
	if err != nil {
		return 0, err
	}
	muL, err := ctx.stream.Prop_pq(props.PropV, ctx.p, 0)
	if err != nil {
		return 0, err
	}
	cpL, err := ctx.stream.Prop_pq(props.PropC, ctx.p, 0)
	if err != nil {
		return 0, err
	}
	kL, err := ctx.stream.Prop_pq(props.PropL, ctx.p, 0)
	if err != nil {
		return 0, err
	}
	xmean := 0.5 * (ctx.xA + ctx.xB)
	xlo, xhi := ctx.xA, ctx.xB
	if xlo > xhi {
		xlo, xhi = xhi, xlo
	}

	kind := sc.Condensing
	if !ctx.hot {
		kind = sc.Boiling
	}
	switch kind {
	case CorrCooper:
		pc, err := ctx.stream.Pcrit()
		if err != nil {
			return 0, err
		}
		m, err := ctx.stream.MolarMass()
		if err != nil {
			return 0, err
		}
		return correlations.CooperPoolBoiling(ctx.p/pc, sc.Roughness, math.Max(qflux, 100), m*1000), nil
	case CorrKandlikar:
		hfg := ctx.sat.HsatV - ctx.sat.HsatL
		return correlations.KandlikarPlate(xmean, g, dh, math.Max(qflux, 100), rhoL, rhoV, muL, cpL, kL, hfg), nil
	case CorrLongo:
		return correlations.LongoCondensation(xmean, g, dh, rhoL, rhoV, muL, cpL, kL), nil
	case CorrShah:
		pc, err := ctx.stream.Pcrit()
		if err != nil {
			return 0, err
		}
		return correlations.ShahCondensationAverage(xlo, xhi, g, dh, ctx.p/pc, muL, cpL, kL), nil
	case CorrShahEvap:
		muV, err := ctx.stream.Prop_pq(props.PropV, ctx.p, 1)
		if err != nil {
			return 0, err
		}
		cpV, err := ctx.stream.Prop_pq(props.PropC, ctx.p, 1)
		if err != nil {
			return 0, err
		}
		kV, err := ctx.stream.Prop_pq(props.PropL, ctx.p, 1)
		if err != nil {
			return 0, err
		}
		hfg := ctx.sat.HsatV - ctx.sat.HsatL
		return correlations.ShahEvaporationAverage(xlo, xhi, g, dh, math.Max(qflux, 100),
			rhoL, rhoV, muL, muV, cpL, cpV, kL, kV, hfg), nil
	}
	return 0, fmt.Errorf("correlation %d is not two-phase", kind)
}

func (e *evaluator) sideCtxFor(z *Zone, hot bool) sideCtx {
	if hot {
		return sideCtx{
			stream: e.b.hotF, p: e.b.hot.P, mdot: e.b.hot.Mdot,
			sat: e.b.hotSat, side: e.cfg.Hot, hot: true,
			phase: z.HotPhase, hMean: 0.5 * (z.HotA.H + z.HotB.H),
			xA: e.b.hotSat.Quality(z.HotA.H), xB: e.b.hotSat.Quality(z.HotB.H),
		}
	}
	return sideCtx{
		stream: e.b.coldF, p: e.b.cold.P, mdot: e.b.cold.Mdot,
		sat: e.b.coldSat, side: e.cfg.Cold, hot: false,
		phase: z.ColdPhase, hMean: 0.5 * (z.ColdA.H + z.ColdB.H),
		xA: e.b.coldSat.Quality(z.ColdA.H), xB: e.b.coldSat.Quality(z.ColdB.H),
	}
}

// evalZone fills the zone's coefficients, conductance and required area.
// Flux-dependent boiling correlations run the boiling-number fixed point:
// guess the flux, size the zone, recompute the flux from duty/area.
func (e *evaluator) evalZone(z *Zone) error {
	hotCtx := e.sideCtxFor(z, true)
	coldCtx := e.sideCtxFor(z, false)

	areaRatio := 1.0
	if e.cfg.Cold.Area > 0 {
		areaRatio = e.cfg.Hot.Area / e.cfg.Cold.Area
	}

	size := func(qflux float64) error {
		hH, err := e.coeff(hotCtx, qflux)
		if err != nil {
			return err
		}
		hC, err := e.coeff(coldCtx, qflux)
		if err != nil {
			return err
		}
		etaH, etaC := 1.0, 1.0
		if e.cfg.Hot.Fin != nil {
			etaH = e.cfg.Hot.Fin.SchmidtEfficiency(hH)
		}
		if e.cfg.Cold.Fin != nil {
			etaC = e.cfg.Cold.Fin.SchmidtEfficiency(hC)
		}
		u := 1 / (1/(etaH*hH) + areaRatio/(etaC*hC))
		z.HotCoeff, z.ColdCoeff = hH, hC
		z.EtaHot, z.EtaCold = etaH, etaC
		z.U = u
		z.Area = z.Duty / (u * z.LMTD)
		return nil
	}

	fluxDep := false
	if s, ok := e.cfg.Strategy.(CorrelatedU); ok {
		fluxDep = e.fluxDependent(s.Cold, coldCtx) || e.fluxDependent(s.Hot, hotCtx)
	}
	if !fluxDep {
		return size(0)
	}

	q0 := z.Duty / math.Max(e.cfg.Hot.Area, 1e-6)
	_, ok, err := numeric.FixedPoint(func(qf float64) (float64, error) {
		if err := size(qf); err != nil {
			return 0, err
		}
		return z.Duty / z.Area, nil
	}, q0, e.cfg.Solver.BoilingRelTol, e.cfg.Solver.BoilingMaxIter)
	if err != nil {
		return err
	}
	if !ok {
		// lenient by design: keep the last iterate and carry on
		log.WithFields(log.Fields{
			"duty": z.Duty,
			"lmtd": z.LMTD,
		}).Warn("boiling-number closure hit the iteration cap, using last iterate")
	}
	return nil
}

// areaResidual is 1 - required/available total area at candidate duty q.
// Positive means the exchanger still has spare surface.
func (e *evaluator) areaResidual(q float64) (float64, *Profile, error) {
	p, err := e.b.profile(q)
	if err != nil {
		return 0, nil, err
	}
	total := 0.0
	for i := range p.Zones {
		if err := e.evalZone(&p.Zones[i]); err != nil {
			return 0, nil, err
		}
		total += p.Zones[i].Area
	}
	return 1 - total/e.cfg.Hot.Area, p, nil
}
