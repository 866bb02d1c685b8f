package algorithm

import (
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// FindPIAssignment backtraces a single path from the objective wire to a
// primary input and assigns it. When the objective needs a controlling
// value the easiest-to-control unknown input is chosen; when it needs the
// non-controlling value on all inputs the hardest is chosen, deferring the
// high-leverage decision. Returns nil when no unknown input remains on the
// chosen path.
func (p *Podem) FindPIAssignment(objWire *circuit.Line, objLevel circuit.LogicValue) *circuit.Line {
	if objWire.Type == circuit.PrimaryInput {
		objWire.Value = objLevel
		p.Logger.Decision("backtrace reached PI %s", objWire)
		return objWire
	}

	gate := objWire.InputGate
	if gate == nil {
		return nil
	}

	var next *circuit.Line
	switch gate.Type {
	case circuit.AND, circuit.OR, circuit.NAND, circuit.NOR:
		// One controlling input suffices when the objective matches the
		// controlled output; otherwise every input must go non-controlling
		controlled := gate.ControllingValue()
		if gate.Type.Inverting() {
			controlled = controlled.Invert()
		}
		if objLevel == controlled {
			next = FindEasiestControl(gate)
		} else {
			next = FindHardestControl(gate)
		}
	case circuit.NOT, circuit.BUF:
		next = gate.Inputs[0]
	default:
		// XOR/XNOR and pseudo-gates have no single-path backtrace
		return nil
	}

	if next == nil {
		return nil
	}

	if gate.Type.Inverting() {
		objLevel = objLevel.Invert()
	}
	return p.FindPIAssignment(next, objLevel)
}

// FindEasiestControl returns the lowest-level unknown input of the gate.
// Inputs are kept in ascending level order, so the first X input wins.
func FindEasiestControl(gate *circuit.Gate) *circuit.Line {
	for _, in := range gate.Inputs {
		if in.Value == circuit.X {
			return in
		}
	}
	return nil
}

// FindHardestControl returns the highest-level unknown input of the gate
func FindHardestControl(gate *circuit.Gate) *circuit.Line {
	for i := len(gate.Inputs) - 1; i >= 0; i-- {
		if gate.Inputs[i].Value == circuit.X {
			return gate.Inputs[i]
		}
	}
	return nil
}
