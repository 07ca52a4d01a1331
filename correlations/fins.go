package correlations

import "math"

// Fin describes a circular fin for the Schmidt efficiency approximation.
type Fin struct {
	Thickness    float64 // fin thickness [m]
	Conductivity float64 // fin material conductivity [W/m-K]
	RootRadius   float64 // tube outer radius at fin root [m]
	TipRadius    float64 // fin tip radius [m]
}

// SchmidtEfficiency returns the fin efficiency for local convective
// coefficient h. Degenerate geometry yields efficiency 1.
func (fn Fin) SchmidtEfficiency(h float64) float64 {
	if fn.Thickness <= 0 || fn.Conductivity <= 0 || fn.TipRadius <= fn.RootRadius {
		return 1
	}
	m := math.Sqrt(2 * h / (fn.Conductivity * fn.Thickness))
	rr := fn.TipRadius / fn.RootRadius
	phi := (rr - 1) * (1 + 0.35*math.Log(rr))
	arg := m * fn.RootRadius * phi
	if arg < 1e-9 {
		return 1
	}
	eta := math.Tanh(arg) / arg
	if eta > 1 {
		eta = 1
	}
	return eta
}
