package algorithm

import (
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// The decision tree is a chronological stack of PI assignments. A PI enters
// with AllAssigned clear (one polarity tried); the first backtrack through
// it flips the value and sets AllAssigned, the second retracts it to X and
// pops. Only flips count against the backtrack budget.

// pushDecision records a freshly assigned PI as the newest decision
func (p *Podem) pushDecision(w *circuit.Line) {
	w.AllAssigned = false
	p.decisionTree = append(p.decisionTree, w)
	p.Stats.Decisions++
	depth := p.DecisionDepth()
	if depth > p.Stats.MaxDecisionDepth {
		p.Stats.MaxDecisionDepth = depth
	}
	p.Logger.Decision("assign %s (depth %d)", w, depth)
}

// backtrack unwinds the decision tree until a PI with an untried polarity
// is found. That PI is flipped and returned; retracted PIs go back to X.
// Returns nil when the tree is exhausted (the fault is untestable).
func (p *Podem) backtrack() *circuit.Line {
	for len(p.decisionTree) > 0 {
		top := p.decisionTree[len(p.decisionTree)-1]

		if top.AllAssigned {
			// Both polarities tried: retract and pop
			top.AllAssigned = false
			top.Value = circuit.X
			top.Changed = true
			p.decisionTree = p.decisionTree[:len(p.decisionTree)-1]
			p.Logger.Backtrack("retract %s (depth %d)", top.Name, len(p.decisionTree))
			continue
		}

		// Flip the last decision and charge one backtrack
		top.Value = top.Value.Invert()
		top.Changed = true
		top.AllAssigned = true
		p.backtracks++
		p.Logger.Backtrack("flip %s (backtrack %d)", top, p.backtracks)
		return top
	}

	p.Logger.Backtrack("decision tree exhausted")
	return nil
}

// DecisionDepth returns the current depth of the decision tree
func (p *Podem) DecisionDepth() int {
	return len(p.decisionTree)
}
