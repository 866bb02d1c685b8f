package algorithm

import (
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// excitationValue is the value that activates a stuck-at fault: the
// opposite of the stuck polarity
func excitationValue(ft circuit.FaultType) circuit.LogicValue {
	if ft == circuit.Stuck0 {
		return circuit.One
	}
	return circuit.Zero
}

// propagationObjective is the output value that advances a fault through a
// gate: the non-controlling input value as seen at the output (AND/NOR 1,
// NAND/OR 0). X for gate types that cannot serve as propagation targets.
func propagationObjective(g *circuit.Gate) circuit.LogicValue {
	obj := g.NonControllingValue()
	if g.Type.Inverting() {
		obj = obj.Invert()
	}
	return obj
}

// TestPossible determines the current objective (wire, value) for the
// fault — excitation first, then D-frontier propagation — and backtraces
// it to a PI assignment. Returns the assigned PI, or nil when no test is
// possible under the present assignment and the driver must backtrack.
func (p *Podem) TestPossible(fault *circuit.Fault) *circuit.Line {
	var objWire *circuit.Line
	var objLevel circuit.LogicValue

	if fault.Gate.Type != circuit.OUTPUT {
		out := fault.Gate.Output

		if out.Value != circuit.X {
			// Fault effect must still be alive at the faulty gate output
			if out.Value != circuit.D && out.Value != circuit.Dnot {
				return nil
			}

			// Advance the D-frontier: pick the propagation gate nearest a PO
			n := p.FindPropagateGate(out.Level)
			if n == nil {
				return nil
			}

			objLevel = propagationObjective(n)
			if objLevel == circuit.X {
				// Not a valid propagation target, treat as a dead end
				return nil
			}
			objWire = n.Output
		} else {
			// Faulty gate output still unknown: excite the fault, but only
			// if the effect could still reach a PO
			if !p.TraceUnknownPath(out) {
				return nil
			}

			if fault.IO == circuit.GateOutput {
				objLevel = excitationValue(fault.Type)
				objWire = out
			} else {
				faulted := fault.Gate.Inputs[fault.Index]
				if faulted.Value != circuit.X {
					// Faulted input already set: drive the gate output so the
					// faulted input dominates
					objLevel = propagationObjective(fault.Gate)
					if objLevel == circuit.X {
						return nil
					}
					objWire = out
				} else {
					objLevel = excitationValue(fault.Type)
					objWire = faulted
				}
			}
		}
	} else {
		// Fault on a primary output pseudo-gate
		po := fault.Gate.Inputs[0]
		if po.Value != circuit.X {
			return nil
		}
		objLevel = excitationValue(fault.Type)
		objWire = po
	}

	p.Logger.Algorithm("objective %s = %s", objWire.Name, objLevel)
	return p.FindPIAssignment(objWire, objLevel)
}

// FindPropagateGate picks the next D-frontier gate to drive: a marked gate
// with D or D' on an input and an unknown output, nearest to a PO. Lines
// are scanned in descending level order; reaching the faulty gate's level
// means no propagation path remains.
func (p *Podem) FindPropagateGate(level int) *circuit.Gate {
	sorted := p.Circuit.SortedLines

	for i := len(sorted) - 1; i >= 0; i-- {
		w := sorted[i]
		if w.Level == level {
			return nil
		}
		if w.Value != circuit.X || w.InputGate == nil || !w.InputGate.Marked {
			continue
		}

		if w.InputGate.HasFaultyInput() && p.TraceUnknownPath(w) {
			return w.InputGate
		}
	}

	return nil
}
