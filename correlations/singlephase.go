// Package correlations carries the convective-coefficient and fin-efficiency
// library used by the heat-exchanger zone evaluator. Inputs are plain local
// fluid properties so the package stays independent of the property backend.
package correlations

import "math"

// churchill returns the Darcy friction factor (f_laminar = 64/Re) for a
// smooth wall.
func churchill(re float64) float64 {
	a := math.Pow(-2.457*math.Log(math.Pow(7.0/re, 0.9)), 16)
	b := math.Pow(37530.0/re, 16)
	return 8 * math.Pow(math.Pow(8/re, 12)+1/math.Pow(a+b, 1.5), 1.0/12.0)
}

// Annulus evaluates single-phase flow through an annulus of outer/inner
// diameter od/id: Churchill friction factor and Gnielinski heat transfer.
// Returns friction factor, convective coefficient [W/m^2-K] and Reynolds.
func Annulus(mdot, od, id, rho, mu, cp, k float64) (f, h, re float64) {
	pr := cp * mu / k
	dh := od - id
	area := math.Pi * (od*od - id*id) / 4.0
	u := mdot / (area * rho)
	re = rho * u * dh / mu
	f = churchill(re)
	nu := (f / 8) * (re - 1000) * pr / (1 + 12.7*math.Sqrt(f/8)*(math.Pow(pr, 0.66666)-1))
	h = k * nu / dh
	return f, h, re
}

// Tube is the degenerate annulus with zero inner diameter.
func Tube(mdot, id, rho, mu, cp, k float64) (f, h, re float64) {
	return Annulus(mdot, id, 0.0, rho, mu, cp, k)
}

// Channel evaluates single-phase flow through a rectangular channel of width
// w and gap height hgt, falling back to Nu = 3.66 below the Gnielinski range.
func Channel(mdot, w, hgt, rho, mu, cp, k float64) (f, h, re float64) {
	pr := cp * mu / k
	dh := 2 * hgt * w / (hgt + w)
	u := mdot / (w * hgt * rho)
	re = rho * u * dh / mu
	f = churchill(re)
	var nu float64
	if re > 1000 {
		nu = (f / 8) * (re - 1000) * pr / (1 + 12.7*math.Sqrt(f/8)*(math.Pow(pr, 0.66666)-1))
	} else {
		nu = 3.66
	}
	h = k * nu / dh
	return f, h, re
}

// Plate is a chevron plate channel, VDI Heat Atlas N6 (Martin).
type Plate struct {
	Amplitude   float64 // corrugation amplitude [m]
	Wavelength  float64 // corrugation wavelength [m]
	Inclination float64 // chevron inclination angle [rad]
	Bp          float64 // port-to-port width [m]
	Lp          float64 // port-to-port length [m]
}

// PlateGeo are the derived per-channel geometric quantities.
type PlateGeo struct {
	Ap       float64 // effective area of one plate [m^2]
	Vchannel float64 // volume of one channel [m^3]
	Aflow    float64 // flow cross-section of one gap [m^2]
	Dh       float64 // hydraulic diameter [m]
	Phi      float64 // area enlargement factor [-]
}

func (p Plate) Geometry() PlateGeo {
	x := 2 * math.Pi * p.Amplitude / p.Wavelength
	phi := 1.0 / 6.0 * (1 + math.Sqrt(1+x*x) + 4*math.Sqrt(1+x*x/2))
	return PlateGeo{
		Ap:       phi * p.Bp * p.Lp,
		Vchannel: p.Bp * p.Lp * 2 * p.Amplitude,
		Aflow:    2 * p.Amplitude * p.Bp,
		Dh:       4 * p.Amplitude / phi,
		Phi:      phi,
	}
}

// SinglePhase evaluates the Martin plate correlation for one gap's mass flow.
// Returns the convective coefficient [W/m^2-K], pressure drop [Pa] and Re.
func (p Plate) SinglePhase(mdotGap, rho, mu, cp, k float64) (h, dp, re float64) {
	geo := p.Geometry()
	pr := cp * mu / k
	w := mdotGap / rho / geo.Aflow
	re = rho * w * geo.Dh / mu

	phi := p.Inclination
	var zeta0, zeta10 float64
	if re < 2000 {
		zeta0 = 64 / re
		zeta10 = 597/re + 3.85
	} else {
		zeta0 = math.Pow(1.8*math.Log(re)-1.5, -2)
		zeta10 = 39 / math.Pow(re, 0.289)
	}
	const (
		aCoef = 3.8
		bCoef = 0.18
		cCoef = 0.36
	)
	zeta1 := aCoef * zeta10
	rhs := math.Cos(phi)/math.Sqrt(bCoef*math.Tan(phi)+cCoef*math.Sin(phi)+zeta0/math.Cos(phi)) +
		(1-math.Cos(phi))/math.Sqrt(zeta1)
	zeta := 1 / (rhs * rhs)
	hg := zeta * re * re / 2 // Hagen number

	const (
		cq = 0.122
		q  = 0.39
	)
	nu := cq * math.Pow(pr, 1.0/3.0) * math.Pow(2*hg*math.Sin(2*phi), q)
	h = nu * k / geo.Dh
	dp = hg * mu * mu * p.Lp / (rho * geo.Dh * geo.Dh * geo.Dh)
	return h, dp, re
}
