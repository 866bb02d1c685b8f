package circuit

import (
	"sort"
)

// Finalize prepares a freshly built circuit for test generation: it attaches
// an OUTPUT pseudo-gate to every primary output line that lacks one, then
// levelizes the graph. Must be called once after all lines and gates exist.
func (c *Circuit) Finalize() {
	nextID := 0
	for _, gate := range c.Gates {
		if gate.ID >= nextID {
			nextID = gate.ID + 1
		}
	}

	for _, out := range c.Outputs {
		if hasOutputNode(out) {
			continue
		}
		po := NewGate(nextID, "po_"+out.Name, OUTPUT)
		nextID++
		po.AddInput(out)
		c.AddGate(po)
	}

	c.Levelize()
}

func hasOutputNode(line *Line) bool {
	for _, gate := range line.OutputGates {
		if gate.Type == OUTPUT {
			return true
		}
	}
	return false
}

// Levelize assigns a level to each line in the circuit. Primary inputs are
// level 0 and a gate output sits one above its deepest input. Gate inputs
// are reordered by ascending level (the backtrace easy/hard convention) and
// the SortedLines scan order for the simulator is rebuilt.
func (c *Circuit) Levelize() {
	for _, line := range c.Lines {
		line.Level = -1
	}
	for _, input := range c.Inputs {
		input.Level = 0
	}

	// Keep processing gates until all driven lines have levels
	changed := true
	for changed {
		changed = false

		for _, gate := range c.Gates {
			if gate.Type == OUTPUT || gate.Output == nil {
				continue
			}
			if gate.Output.Level >= 0 {
				continue
			}

			maxInputLevel := -1
			allInputsHaveLevels := true
			for _, input := range gate.Inputs {
				if input.Level < 0 {
					allInputsHaveLevels = false
					break
				}
				if input.Level > maxInputLevel {
					maxInputLevel = input.Level
				}
			}

			if allInputsHaveLevels {
				gate.Output.Level = maxInputLevel + 1
				changed = true
			}
		}
	}

	// Gate inputs in increasing level order: lower index = easier to control
	for _, gate := range c.Gates {
		inputs := gate.Inputs
		sort.SliceStable(inputs, func(i, j int) bool {
			return inputs[i].Level < inputs[j].Level
		})
	}

	c.SortedLines = append([]*Line(nil), c.Lines...)
	sort.SliceStable(c.SortedLines, func(i, j int) bool {
		if c.SortedLines[i].Level != c.SortedLines[j].Level {
			return c.SortedLines[i].Level < c.SortedLines[j].Level
		}
		return c.SortedLines[i].ID < c.SortedLines[j].ID
	})
}

// MaxLevel returns the deepest line level in the circuit
func (c *Circuit) MaxLevel() int {
	max := 0
	for _, line := range c.Lines {
		if line.Level > max {
			max = line.Level
		}
	}
	return max
}
