package algorithm

import (
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// ImplyResult is the three-valued outcome of a backward implication
type ImplyResult int

const (
	ImplyFalse    ImplyResult = iota // No PI reached, no conflict
	ImplyTrue                        // At least one PI assigned without conflict
	ImplyConflict                    // Contradicts an existing assignment
)

// BackwardImply drives the desired value backward from a wire toward the
// primary inputs, assigning every PI the objective uniquely determines.
// Only unique implications recurse: AND=1, NAND=0, OR=0, NOR=1 constrain
// all inputs; the other output values constrain nothing.
func (p *Podem) BackwardImply(w *circuit.Line, desired circuit.LogicValue) ImplyResult {
	if w.Type == circuit.PrimaryInput {
		if w.Value != circuit.X && w.Value != desired {
			return ImplyConflict // contradicts a previous assignment
		}
		w.Value = desired
		w.Changed = true
		p.Logger.Implication("implied PI %s", w)
		return ImplyTrue
	}

	gate := w.InputGate
	if gate == nil {
		return ImplyFalse
	}

	reach := ImplyFalse
	merge := func(r ImplyResult) ImplyResult {
		if r == ImplyTrue {
			reach = ImplyTrue
		}
		return r
	}

	switch gate.Type {
	case circuit.NOT:
		if merge(p.BackwardImply(gate.Inputs[0], desired.Invert())) == ImplyConflict {
			return ImplyConflict
		}

	case circuit.BUF:
		if merge(p.BackwardImply(gate.Inputs[0], desired)) == ImplyConflict {
			return ImplyConflict
		}

	case circuit.AND:
		if desired == circuit.One {
			for _, in := range gate.Inputs {
				if merge(p.BackwardImply(in, circuit.One)) == ImplyConflict {
					return ImplyConflict
				}
			}
		}

	case circuit.NAND:
		if desired == circuit.Zero {
			for _, in := range gate.Inputs {
				if merge(p.BackwardImply(in, circuit.One)) == ImplyConflict {
					return ImplyConflict
				}
			}
		}

	case circuit.OR:
		if desired == circuit.Zero {
			for _, in := range gate.Inputs {
				if merge(p.BackwardImply(in, circuit.Zero)) == ImplyConflict {
					return ImplyConflict
				}
			}
		}

	case circuit.NOR:
		if desired == circuit.One {
			for _, in := range gate.Inputs {
				if merge(p.BackwardImply(in, circuit.Zero)) == ImplyConflict {
					return ImplyConflict
				}
			}
		}
	}

	return reach
}

// SetUniquelyImpliedValue derives the assignments forced by the fault
// before the search loop starts. Side inputs of an input-side fault must
// carry their non-controlling values; then the faulty wire is driven to
// the value opposite the stuck polarity to excite the fault.
func (p *Podem) SetUniquelyImpliedValue(fault *circuit.Fault) ImplyResult {
	var w *circuit.Line
	reach := ImplyFalse

	if fault.IO == circuit.GateOutput {
		w = fault.Gate.Output
	} else {
		w = fault.Gate.Inputs[fault.Index]

		// NOT/BUF/OUTPUT have no side inputs to pin (non-controlling value X)
		sideValue := fault.Gate.NonControllingValue()
		if sideValue != circuit.X {
			for _, in := range fault.Gate.Inputs {
				if in == w {
					continue
				}
				switch p.BackwardImply(in, sideValue) {
				case ImplyConflict:
					return ImplyConflict
				case ImplyTrue:
					reach = ImplyTrue
				}
			}
		}
	}

	// Fault excitation
	switch p.BackwardImply(w, excitationValue(fault.Type)) {
	case ImplyConflict:
		return ImplyConflict
	case ImplyTrue:
		reach = ImplyTrue
	}
	return reach
}

// FaultEvaluate inserts the fault effect into the circuit after a good
// machine simulation pass. It returns the wire to forward-imply from: for
// an output-side fault the faulty gate output whenever it is not X (whether
// or not D/D' was written), for an input-side fault the gate output when the
// injection changed it. It returns nil when the fault site is still X, when
// the gate output did not change, and for a fault on a PO pseudo-gate input,
// where D/D' is left in place on the PO line itself.
func (p *Podem) FaultEvaluate(fault *circuit.Fault) *circuit.Line {
	if fault.IO == circuit.GateOutput {
		w := fault.Gate.Output
		if w.Value == circuit.X {
			return nil
		}
		if fault.Type == circuit.Stuck0 && w.Value == circuit.One {
			w.Value = circuit.D
		}
		if fault.Type == circuit.Stuck1 && w.Value == circuit.Zero {
			w.Value = circuit.Dnot
		}
		return w
	}

	// Input-side fault: substitute the composite value, re-evaluate only
	// the faulted gate, then restore the good value on the input
	w := fault.Gate.Inputs[fault.Index]
	if w.Value == circuit.X {
		return nil
	}

	saved := w.Value
	if fault.Type == circuit.Stuck0 && w.Value == circuit.One {
		w.Value = circuit.D
	}
	if fault.Type == circuit.Stuck1 && w.Value == circuit.Zero {
		w.Value = circuit.Dnot
	}

	if fault.Gate.Type == circuit.OUTPUT {
		// The faulted wire is the PO itself; the effect stays in place
		return nil
	}

	fault.Gate.Simulate()
	w.Value = saved

	out := fault.Gate.Output
	if out.Changed {
		out.Changed = false // propagation is forward-imply's job
		return out
	}
	return nil
}

// ForwardImply propagates a changed wire depth-first through its fanout,
// re-evaluating each gate and descending wherever the output changed
func (p *Podem) ForwardImply(w *circuit.Line) {
	for _, gate := range w.OutputGates {
		if gate.Type == circuit.OUTPUT {
			continue
		}
		gate.Simulate()
		if gate.Output.Changed {
			p.ForwardImply(gate.Output)
		}
		gate.Output.Changed = false
	}
}
