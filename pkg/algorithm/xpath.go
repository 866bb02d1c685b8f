package algorithm

import (
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// TraceUnknownPath reports whether a path of all-unknown lines leads from
// w to some primary output. The DFS uses the per-line Visited mark to
// survive reconvergent fanout; the marks are cleared again on every return
// path, success or failure.
func (p *Podem) TraceUnknownPath(w *circuit.Line) bool {
	if w.Type == circuit.PrimaryOutput {
		return true
	}

	stack := []*circuit.Line{w}
	visited := []*circuit.Line{w}
	w.Visited = true
	found := false

	for len(stack) > 0 && !found {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, gate := range current.OutputGates {
			out := gate.Output
			if out == nil || out.Visited || out.Value != circuit.X {
				continue
			}
			if out.Type == circuit.PrimaryOutput {
				found = true
				break
			}
			out.Visited = true
			visited = append(visited, out)
			stack = append(stack, out)
		}
	}

	for _, line := range visited {
		line.Visited = false
	}
	return found
}
