package circuit

import "fmt"

// FaultType represents the stuck-at polarity of a fault
type FaultType int

const (
	Stuck0 FaultType = iota
	Stuck1
)

// String returns a string representation of the fault type
func (ft FaultType) String() string {
	if ft == Stuck0 {
		return "stuck-at-0"
	}
	return "stuck-at-1"
}

// FaultIO distinguishes gate-input faults from gate-output faults
type FaultIO int

const (
	GateInput FaultIO = iota
	GateOutput
)

// Fault represents a single stuck-at fault at a gate input or output.
// Index selects the faulted input and is only meaningful for GateInput.
type Fault struct {
	Gate  *Gate
	IO    FaultIO
	Index int
	Type  FaultType
}

// Wire returns the line the fault sits on
func (f *Fault) Wire() *Line {
	if f.IO == GateOutput {
		return f.Gate.Output
	}
	return f.Gate.Inputs[f.Index]
}

// String returns a fault descriptor such as "n5/0" or "n5->g3/1"
func (f *Fault) String() string {
	polarity := "0"
	if f.Type == Stuck1 {
		polarity = "1"
	}
	if f.IO == GateOutput {
		return fmt.Sprintf("%s/%s", f.Gate.Output.Name, polarity)
	}
	return fmt.Sprintf("%s->%s/%s", f.Wire().Name, f.Gate.Name, polarity)
}

// EnumerateFaults builds the full uncollapsed single-stuck-at fault list:
// both polarities on every gate output and on every gate input branch,
// including the OUTPUT pseudo-gate inputs (faults on the POs themselves).
func EnumerateFaults(c *Circuit) []*Fault {
	faults := make([]*Fault, 0, 4*len(c.Gates))

	for _, gate := range c.Gates {
		if gate.Type != OUTPUT {
			faults = append(faults,
				&Fault{Gate: gate, IO: GateOutput, Type: Stuck0},
				&Fault{Gate: gate, IO: GateOutput, Type: Stuck1},
			)
		}
		for i := range gate.Inputs {
			faults = append(faults,
				&Fault{Gate: gate, IO: GateInput, Index: i, Type: Stuck0},
				&Fault{Gate: gate, IO: GateInput, Index: i, Type: Stuck1},
			)
		}
	}

	return faults
}

// FaultOnLine builds the stem fault for a named line: the output fault of
// its driving gate, or an input fault on its first fanout gate when the
// line is a primary input.
func FaultOnLine(line *Line, ft FaultType) (*Fault, error) {
	if line.InputGate != nil {
		return &Fault{Gate: line.InputGate, IO: GateOutput, Type: ft}, nil
	}

	for _, gate := range line.OutputGates {
		for i, input := range gate.Inputs {
			if input == line {
				return &Fault{Gate: gate, IO: GateInput, Index: i, Type: ft}, nil
			}
		}
	}

	return nil, fmt.Errorf("line %s is not connected to any gate", line.Name)
}
