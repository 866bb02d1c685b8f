package circuit

import (
	"fmt"
	"strings"
)

// Circuit represents a digital circuit consisting of gates and lines
type Circuit struct {
	Name        string
	Lines       []*Line
	Gates       []*Gate
	Inputs      []*Line // Primary inputs, in creation (netlist) order
	Outputs     []*Line // Primary outputs, in creation (netlist) order
	SortedLines []*Line // All lines by ascending level, built by Levelize
}

// NewCircuit creates a new circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:  name,
		Lines: make([]*Line, 0),
		Gates: make([]*Gate, 0),
	}
}

// AddGate adds a gate to the circuit
func (c *Circuit) AddGate(gate *Gate) {
	c.Gates = append(c.Gates, gate)
}

// AddLine adds a line to the circuit
func (c *Circuit) AddLine(line *Line) {
	c.Lines = append(c.Lines, line)

	// Categorize inputs and outputs
	if line.Type == PrimaryInput {
		c.Inputs = append(c.Inputs, line)
	} else if line.Type == PrimaryOutput {
		c.Outputs = append(c.Outputs, line)
	}
}

// LineByName returns the line with the given name, or nil
func (c *Circuit) LineByName(name string) *Line {
	for _, line := range c.Lines {
		if line.Name == name {
			return line
		}
	}
	return nil
}

// Reset resets all line values to X and clears the transient search flags
func (c *Circuit) Reset() {
	for _, line := range c.Lines {
		line.Reset()
	}
}

// Simulate propagates pending value changes through the whole circuit.
// Lines are scanned in ascending level order, so a single pass suffices:
// every gate whose input changed is re-evaluated, the consumed change flag
// is cleared, and output changes are flagged for the higher levels.
func (c *Circuit) Simulate() {
	for _, line := range c.SortedLines {
		if !line.Changed {
			continue
		}
		line.Changed = false
		for _, gate := range line.OutputGates {
			gate.Simulate()
		}
	}
}

// CheckTest returns true if the fault effect reached a primary output
func (c *Circuit) CheckTest() bool {
	for _, output := range c.Outputs {
		if output.IsFaulty() {
			return true
		}
	}
	return false
}

// CurrentTest returns the current PI assignment in canonical input order
func (c *Circuit) CurrentTest() []LogicValue {
	test := make([]LogicValue, len(c.Inputs))
	for i, input := range c.Inputs {
		test[i] = input.Value
	}
	return test
}

// String returns a string representation of the circuit state
func (c *Circuit) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", c.Name))

	builder.WriteString("Inputs: ")
	for _, in := range c.Inputs {
		builder.WriteString(fmt.Sprintf("%s ", in))
	}

	builder.WriteString("\nOutputs: ")
	for _, out := range c.Outputs {
		builder.WriteString(fmt.Sprintf("%s ", out))
	}

	return builder.String()
}
