package expander

import (
	"orc/config"
)

// 膨胀机模型配置：效率族与半经验内部模型共用同一入口

// Strategy selects the expander performance model. Exactly one variant is
// attached to a Config.
type Strategy interface{ strategy() }

// ConstantEfficiency applies a fixed isentropic effectiveness.
type ConstantEfficiency struct {
	Epsilon float64 // [-], clamped to [0, 1]
}

// PolyEfficiency evaluates effectiveness and filling factor as polynomials in
// rotational speed [rpm] (coefficients low order first). The speed itself is
// solved from the mass balance through the swept volume.
type PolyEfficiency struct {
	EffCoeffs []float64
	FFCoeffs  []float64
}

// Semiempirical is the lumped internal model: supply nozzle drop, supply-side
// wall exchange, internal leakage, two-step expansion, mechanical losses,
// exhaust-side wall exchange and ambient loss, closed by the wall energy
// balance.
type Semiempirical struct {
	AUsu  float64 // supply-side wall conductance at nominal flow [W/K]
	AUex  float64 // exhaust-side wall conductance at nominal flow [W/K]
	AUamb float64 // wall-to-ambient conductance [W/K]

	Asu   float64 // supply port throat area [m^2], 0 disables the nozzle drop
	Aleak float64 // leakage path area [m^2]
	Rv    float64 // built-in volume ratio [-]

	Alpha float64 // mechanical loss fraction of internal power [-]
	Wdot0 float64 // constant mechanical loss [W]
	Tloss float64 // friction torque [N-m]

	MdotNominal float64 // conductance scaling reference [kg/s], 0 means actual
}

func (ConstantEfficiency) strategy() {}
func (PolyEfficiency) strategy()     {}
func (Semiempirical) strategy()      {}

// Config is the full expander description. Zero fields are filled once by
// withDefaults before any solving begins.
type Config struct {
	Strategy Strategy
	N        float64 // rotational speed [rpm]
	Vs       float64 // swept volume per revolution [m^3]

	// enthalpy validity bounds of the outlet state [J/kg]
	HMin, HMax float64

	Solver config.Solver
}

func (c Config) withDefaults() Config {
	if c.Strategy == nil {
		c.Strategy = ConstantEfficiency{Epsilon: 0.7}
	}
	if c.N == 0 {
		c.N = 3000
	}
	if c.Vs == 0 {
		c.Vs = 1.45e-4
	}
	if c.HMin == 0 && c.HMax == 0 {
		c.HMin, c.HMax = -5.0e6, 5.0e6
	}
	if c.Solver == (config.Solver{}) {
		c.Solver = config.Default()
	}
	return c
}
