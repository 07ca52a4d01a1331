package props

import (
	"fmt"
	"math"
)

// SlipModel selects the two-phase slip correlation for void fraction.
type SlipModel int

const (
	SlipZivi SlipModel = iota
	SlipHomogeneous
)

const machineEps = 2.220446049250313e-16

// TwoPhaseDensity returns the void-fraction-weighted mean density over the
// quality interval [xmin, xmax] at the given saturation envelope.
func TwoPhaseDensity(f Fluid, p float64, xmin, xmax float64, slip SlipModel) (float64, error) {
	rhog, err := f.D_pq(p, 1.0)
	if err != nil {
		return 0, err
	}
	rhof, err := f.D_pq(p, 0.0)
	if err != nil {
		return 0, err
	}
	if xmin+5*machineEps < 0 || xmax-5*machineEps > 1.0 {
		return 0, fmt.Errorf("quality interval [%g, %g] outside [0, 1]", xmin, xmax)
	}

	var s float64
	switch slip {
	case SlipZivi:
		s = math.Pow(rhof/rhog, 1.0/3.0)
	case SlipHomogeneous:
		s = 1
	default:
		return 0, fmt.Errorf("unknown slip model %d", slip)
	}
	c := s * rhog / rhof

	var alpha float64
	switch {
	case xmin == xmax:
		alpha = 1 / (1 + c*(1-xmin)/(xmin+1.0e-6))
	case xmin >= 1.0:
		alpha = 1.0
	case xmax <= 0.0:
		alpha = 0.0
	default:
		alpha = -(c*(math.Log(((xmax-1.0)*c-xmax)/((xmin-1.0)*c-xmin))+xmax-xmin) - xmax + xmin) /
			(c*c - 2*c + 1) / (xmax - xmin)
	}
	return alpha*rhog + (1-alpha)*rhof, nil
}
