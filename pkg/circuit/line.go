package circuit

import (
	"fmt"
)

// LogicValue represents the possible values for a signal line
type LogicValue int

const (
	X    LogicValue = iota // Unknown/unassigned
	Zero                   // Logic 0
	One                    // Logic 1
	D                      // Good circuit: 1, Faulty circuit: 0
	Dnot                   // Good circuit: 0, Faulty circuit: 1
)

// String returns a string representation of the logic value
func (v LogicValue) String() string {
	switch v {
	case X:
		return "X"
	case Zero:
		return "0"
	case One:
		return "1"
	case D:
		return "D"
	case Dnot:
		return "D'"
	default:
		return "?"
	}
}

// IsFaulty returns true if the value is D or D'
func (v LogicValue) IsFaulty() bool {
	return v == D || v == Dnot
}

// Invert returns the complement of the value (X stays X)
func (v LogicValue) Invert() LogicValue {
	switch v {
	case Zero:
		return One
	case One:
		return Zero
	case D:
		return Dnot
	case Dnot:
		return D
	default:
		return X
	}
}

// Good returns the good-circuit component of the value (1 for D, 0 for D')
func (v LogicValue) Good() LogicValue {
	switch v {
	case D:
		return One
	case Dnot:
		return Zero
	default:
		return v
	}
}

// Faulty returns the faulty-circuit component of the value (0 for D, 1 for D')
func (v LogicValue) Faulty() LogicValue {
	switch v {
	case D:
		return Zero
	case Dnot:
		return One
	default:
		return v
	}
}

// LineType represents the classification of a line in the circuit
type LineType int

const (
	Normal LineType = iota
	PrimaryInput
	PrimaryOutput
)

// Line represents a signal line in the circuit
type Line struct {
	ID          int        // Unique identifier
	Name        string     // Name of the line
	Value       LogicValue // Current value
	Type        LineType   // Type of the line
	Level       int        // Distance from the primary inputs (PIs are level 0)
	InputGate   *Gate      // Gate driving this line (nil for primary inputs)
	OutputGates []*Gate    // Gates to which this line is an input

	// Transient search state, reset between faults
	Changed     bool // Value changed since the simulator last consumed it
	AllAssigned bool // Both polarities already tried as a PI decision
	Visited     bool // X-path DFS mark, always cleared before the search returns
}

// NewLine creates a new Line with the given name and ID
func NewLine(id int, name string, lineType LineType) *Line {
	return &Line{
		ID:          id,
		Name:        name,
		Value:       X,
		Type:        lineType,
		OutputGates: make([]*Gate, 0),
	}
}

// Reset resets the line value to X and clears the transient search flags
func (l *Line) Reset() {
	l.Value = X
	l.Changed = false
	l.AllAssigned = false
	l.Visited = false
}

// String returns a string representation of the line
func (l *Line) String() string {
	return fmt.Sprintf("%s=%s", l.Name, l.Value)
}

// IsAssigned returns true if the line has a definite value (not X)
func (l *Line) IsAssigned() bool {
	return l.Value != X
}

// IsFaulty returns true if the line carries a faulty value (D or D')
func (l *Line) IsFaulty() bool {
	return l.Value.IsFaulty()
}

// AddOutputGate adds a gate that this line feeds into
func (l *Line) AddOutputGate(gate *Gate) {
	l.OutputGates = append(l.OutputGates, gate)
}

// SetInputGate sets the gate that drives this line
func (l *Line) SetInputGate(gate *Gate) {
	l.InputGate = gate
}
