package correlations

import "math"

// CooperPoolBoiling returns the nucleate pool-boiling coefficient [W/m^2-K].
// pstar is reduced pressure, rp surface roughness [um], q heat flux [W/m^2],
// m molar mass [kg/kmol].
func CooperPoolBoiling(pstar, rp, q, m float64) float64 {
	return 55 * math.Pow(pstar, 0.12-0.2*math.Log10(rp)) *
		math.Pow(-math.Log10(pstar), -0.55) * math.Pow(q, 0.67) * math.Pow(m, -0.5)
}

// KandlikarPlate is the plate-evaporator flow-boiling correlation. g is mass
// flux [kg/m^2-s], d hydraulic diameter [m], q heat flux [W/m^2], hfg latent
// heat [J/kg]. Quality is clamped away from the endpoints where the
// convection number degenerates.
func KandlikarPlate(xmean, g, d, q, rhoL, rhoV, muL, cpL, kL, hfg float64) float64 {
	if xmean < 0.01 {
		xmean = 0.01
	}
	if xmean > 0.99 {
		xmean = 0.99
	}
	prL := cpL * muL / kL
	alphaL := 0.023 * math.Pow(g*d/muL, 0.8) * math.Pow(prL, 0.4) * kL / d
	co := math.Sqrt(rhoV/rhoL) * math.Pow((1-xmean)/xmean, 0.8)
	bo := q / (g * hfg)
	return 1.055 * (1.056*math.Pow(co, -0.4) + 1.02*math.Pow(bo, 0.9)) *
		math.Pow(xmean, -0.12) * math.Pow(alphaL, 0.98)
}

// LongoCondensation is the plate condensation correlation of Longo.
func LongoCondensation(xavg, g, dh, rhoL, rhoV, muL, cpL, kL float64) float64 {
	prL := cpL * muL / kL
	reEq := g * ((1 - xavg) + xavg*math.Sqrt(rhoL/rhoV)) * dh / muL
	var nu float64
	if reEq < 1750 {
		nu = 60 * math.Pow(prL, 1.0/3.0)
	} else {
		nu = ((75.0-60.0)/(3000.0-1750.0)*(reEq-1750) + 60) * math.Pow(prL, 1.0/3.0)
	}
	return nu * kL / dh
}

// ShahCondensation is the pointwise Shah correlation at quality x. pstar is
// reduced pressure.
func ShahCondensation(x, g, d, pstar, muL, cpL, kL float64) float64 {
	if g < 0 {
		g = 3
	}
	prL := cpL * muL / kL
	hL := 0.023 * math.Pow(g*d/muL, 0.8) * math.Pow(prL, 0.4) * kL / d
	return hL * (math.Pow(1-x, 0.8) + 3.8*math.Pow(x, 0.76)*math.Pow(1-x, 0.04)/math.Pow(pstar, 0.38))
}

// ShahCondensationAverage is the quality-averaged Shah coefficient over
// [xmin, xmax].
func ShahCondensationAverage(xmin, xmax, g, d, pstar, muL, cpL, kL float64) float64 {
	if g < 0 {
		g = 3
	}
	return qualityAverage(func(x float64) float64 {
		return ShahCondensation(x, g, d, pstar, muL, cpL, kL)
	}, xmin, xmax)
}

// ShahEvaporation is the pointwise Shah flow-boiling correlation at quality x.
// q is heat flux [W/m^2]; liquid properties are at the bubble point, vapor
// properties at the dew point. Above x = 0.999 the coefficient is blended
// linearly into the all-vapor value.
func ShahEvaporation(x, g, d, q, rhoL, rhoV, muL, muV, cpL, cpV, kL, kV, hfg float64) float64 {
	prL := cpL * muL / kL
	prV := cpV * muV / kV
	frL := g * g / (rhoL * rhoL * 9.81 * d)
	bo := q / (g * hfg)
	fNb := 15.43
	if bo > 0.0011 {
		fNb = 14.7
	}
	hV := 0.023 * math.Pow(g*d/muV, 0.8) * math.Pow(prV, 0.4) * kV / d

	point := func(x float64) float64 {
		if math.Abs(1-x) < 5e-16 {
			return hV
		}
		hL := 0.023 * math.Pow(g*(1-x)*d/muL, 0.8) * math.Pow(prL, 0.4) * kL / d
		co := math.Pow(1/x-1, 0.8) * math.Sqrt(rhoV/rhoL)
		n := co
		if frL < 0.04 {
			n = 0.38 * math.Pow(frL, -0.3) * co
		}
		psiCb := 1.8 / math.Pow(n, 0.8)
		var psi float64
		switch {
		case n > 1.0:
			psiNb := 230 * math.Sqrt(bo)
			if bo <= 3e-5 {
				psiNb = 1 + 46*math.Sqrt(bo)
			}
			psi = math.Max(psiNb, psiCb)
		case n > 0.1:
			psi = math.Max(fNb*math.Sqrt(bo)*math.Exp(2.74*math.Pow(n, -0.1)), psiCb)
		default:
			psi = math.Max(fNb*math.Sqrt(bo)*math.Exp(2.47*math.Pow(n, -0.15)), psiCb)
		}
		return psi * hL
	}

	if x > 0.999 {
		h999 := point(0.999)
		return h999 + (x-0.999)/(1-0.999)*(hV-h999)
	}
	return point(x)
}

// ShahEvaporationAverage is the quality-averaged Shah flow-boiling
// coefficient over [xmin, xmax].
func ShahEvaporationAverage(xmin, xmax, g, d, q, rhoL, rhoV, muL, muV, cpL, cpV, kL, kV, hfg float64) float64 {
	return qualityAverage(func(x float64) float64 {
		return ShahEvaporation(x, g, d, q, rhoL, rhoV, muL, muV, cpL, cpV, kL, kV, hfg)
	}, xmin, xmax)
}

// qualityAverage is the mean of f over the quality interval, via composite
// Simpson quadrature. A degenerate interval collapses to the midpoint value.
func qualityAverage(f func(float64) float64, xmin, xmax float64) float64 {
	if xmax < xmin {
		xmin, xmax = xmax, xmin
	}
	if xmax-xmin < 1e-9 {
		return f(0.5 * (xmin + xmax))
	}
	const n = 11
	h := (xmax - xmin) / float64(n-1)
	sum := f(xmin) + f(xmax)
	for i := 1; i < n-1; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		sum += w * f(xmin+float64(i)*h)
	}
	return sum * h / 3 / (xmax - xmin)
}

// BoilingNumber is q / (G * hfg).
func BoilingNumber(q, g, hfg float64) float64 {
	return q / (g * hfg)
}
