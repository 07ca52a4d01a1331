// Package config loads the numeric solver defaults. Values not present in
// the ini file (or the file missing entirely) fall back to built-ins, so a
// zero-configuration run behaves like the shipped conf/solver.ini.
package config

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Solver carries the shared tolerances and iteration caps.
type Solver struct {
	TolX           float64 // bracket-width tolerance of the outer root search
	TolF           float64 // residual tolerance of the outer root search
	MaxIter        int     // outer root search iteration cap
	BoilingRelTol  float64 // boiling-number fixed-point relative tolerance
	BoilingMaxIter int     // boiling-number fixed-point iteration cap
	PinchFloor     float64 // temperature-difference floor [K]
	TempMargin     float64 // feasibility margin on supply temperatures [K]
}

// Load reads path and fills the defaults. A missing or broken file is
// reported once and degrades to the built-ins.
func Load(path string) Solver {
	file, err := ini.Load(path)
	if err != nil {
		log.WithError(err).Debug("solver config not loaded, using built-in defaults")
		file = ini.Empty()
	}
	return loadCfg(file)
}

// Default returns the built-in solver settings.
func Default() Solver {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Solver {
	sec := file.Section("solver")
	return Solver{
		TolX:           sec.Key("TolX").MustFloat64(1e-2),
		TolF:           sec.Key("TolF").MustFloat64(1e-4),
		MaxIter:        sec.Key("MaxIter").MustInt(100),
		BoilingRelTol:  sec.Key("BoilingRelTol").MustFloat64(0.05),
		BoilingMaxIter: sec.Key("BoilingMaxIter").MustInt(10),
		PinchFloor:     sec.Key("PinchFloor").MustFloat64(1e-2),
		TempMargin:     sec.Key("TempMargin").MustFloat64(1e-2),
	}
}
