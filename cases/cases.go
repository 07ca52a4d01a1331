package cases

import (
	"math"

	"orc/correlations"
	"orc/expander"
	"orc/hex"
	"orc/model"
)

// 演示工况：板式蒸发器（导热油/R245fa）与氨容积式膨胀机

// Evaporator returns the brazed-plate evaporator demo case: Therminol 66 at
// 90 C heating R245fa from a subcooled supply through the dome.
func Evaporator() (hot, cold model.Stream, cfg hex.Config) {
	hot = model.Stream{
		Fluid: "INCOMP::T66", P: 2.0e5,
		Kind: model.SupplyTemperature, T: 363.15, Mdot: 0.09,
	}
	cold = model.Stream{
		Fluid: "R245fa", P: 4.188e5,
		Kind: model.SupplyTemperature, T: 293.15, Mdot: 0.0252,
	}
	cfg = hex.Config{
		Strategy: hex.CorrelatedU{
			Hot: hex.SideCorrelations{SinglePhase: hex.CorrMartinPlate},
			Cold: hex.SideCorrelations{
				SinglePhase: hex.CorrMartinPlate,
				Boiling:     hex.CorrCooper,
			},
		},
		Plate: correlations.Plate{
			Amplitude:   0.00102,
			Wavelength:  0.0066,
			Inclination: math.Pi / 3,
			Bp:          0.119,
			Lp:          0.526,
		},
		Hot:  hex.Side{Area: 9.8, Volume: 0.0039, Gaps: 24},
		Cold: hex.Side{Area: 9.8, Volume: 0.0041, Gaps: 25},
	}
	return hot, cold, cfg
}

// Expander returns the open-drive ammonia expander demo case: superheated
// R717 expanding from 50.75 bar to the 2.47 bar exhaust line.
func Expander() (su model.Stream, pex, tamb float64, cfg expander.Config) {
	su = model.Stream{
		Fluid: "R717", P: 50.75e5,
		Kind: model.SupplyTemperature, T: 473.15, Mdot: 0.160,
	}
	pex = 2.47e5
	tamb = 298.15
	cfg = expander.Config{
		Strategy: expander.Semiempirical{
			AUsu: 21.2, AUex: 34.2, AUamb: 3.4,
			Asu: 2.0e-4, Aleak: 4.0e-6, Rv: 4.0,
			Alpha: 0.1, Wdot0: 150, Tloss: 0.5,
			MdotNominal: 0.16,
		},
	}
	return su, pex, tamb, cfg
}
