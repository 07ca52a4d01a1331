package model

// 共享的值类型：流股、求解状态标志、websocket 消息

// SupplyKind tags which quantity fixes the supply state of a stream.
type SupplyKind int

const (
	SupplyEnthalpy SupplyKind = iota
	SupplyTemperature
)

// Stream is one side's boundary condition. Immutable per solve call.
type Stream struct {
	Fluid string     `json:"fluid"`
	P     float64    `json:"p"` // supply pressure [Pa]
	Kind  SupplyKind `json:"kind"`
	H     float64    `json:"h"`    // supply enthalpy [J/kg], valid when Kind == SupplyEnthalpy
	T     float64    `json:"t"`    // supply temperature [K], valid when Kind == SupplyTemperature
	Mdot  float64    `json:"mdot"` // mass flow rate [kg/s]
}

// Status flags shared by both component solvers.
const (
	FlagConverged    = 1 // root search converged / closed form valid
	FlagDutyLimited  = 2 // exchanger oversized, duty saturated at Qmax
	FlagPassthrough  = 3 // equal supply temperatures, zero-duty passthrough
	FlagNotConverged = -1
	FlagInfeasible   = -2 // thermodynamically unordered / non-positive pressure ratio
	FlagNoFlow       = -3 // non-positive mass flow, zero-duty passthrough
)

// Msg is the websocket request/response frame.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
