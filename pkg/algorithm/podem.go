package algorithm

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fyerfyer/podem-atpg/pkg/circuit"
	"github.com/fyerfyer/podem-atpg/pkg/utils"
)

// TestResult is the ternary outcome of a single-fault search
type TestResult int

const (
	Untestable TestResult = iota // Decision tree exhausted or initial conflict
	TestFound                    // A test vector exists
	Aborted                      // Backtrack limit reached before an answer
)

// String returns a string representation of the test result
func (r TestResult) String() string {
	switch r {
	case TestFound:
		return "test found"
	case Untestable:
		return "untestable"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Stats contains statistics about the test generation run
type Stats struct {
	Decisions        int           // Number of PI decisions pushed
	Backtracks       int           // Number of value flips performed
	MaxDecisionDepth int           // Deepest decision tree reached
	TestsFound       int           // Faults with a test
	Untestable       int           // Redundant faults
	Aborted          int           // Faults abandoned at the backtrack limit
	TotalTime        time.Duration // Total search time
}

// Podem implements the PODEM test pattern generation algorithm
type Podem struct {
	Circuit        *circuit.Circuit
	Logger         *utils.Logger
	BacktrackLimit int       // Per-fault backtrack budget
	Patterns       int       // Patterns to generate per fault
	Out            io.Writer // Pattern sink
	Stats          Stats

	rng          *rand.Rand
	decisionTree []*circuit.Line
	backtracks   int // Backtracks consumed by the current fault
}

// NewPodem creates a new PODEM instance for the given circuit
func NewPodem(c *circuit.Circuit, logger *utils.Logger) *Podem {
	return &Podem{
		Circuit:        c,
		Logger:         logger,
		BacktrackLimit: 100,
		Patterns:       1,
		Out:            os.Stdout,
		rng:            rand.New(rand.NewSource(1)),
	}
}

// SetSeed reseeds the random-fill generator
func (p *Podem) SetSeed(seed int64) {
	p.rng = rand.New(rand.NewSource(seed))
}

// FindTest generates up to Patterns test patterns for a single fault and
// returns the outcome together with the number of backtracks consumed.
// Patterns are written to Out as they are confirmed.
func (p *Podem) FindTest(fault *circuit.Fault) (TestResult, int) {
	start := time.Now()
	c := p.Circuit

	p.Logger.Info("generating test for %s", fault)

	c.Reset()
	p.decisionTree = p.decisionTree[:0]
	p.backtracks = 0
	findTest := false
	noTest := false
	attempts := 0 // patterns generated so far for this fault

	MarkPropagateTree(fault.Gate)

	// Initial objective: assignments uniquely implied by the fault itself
	switch p.SetUniquelyImpliedValue(fault) {
	case ImplyTrue:
		c.Simulate()
		if wfault := p.FaultEvaluate(fault); wfault != nil {
			p.ForwardImply(wfault)
		}
		if c.CheckTest() {
			findTest = true
		}
	case ImplyConflict:
		noTest = true
	case ImplyFalse:
		// no PI reached, keep backtracing in the search loop
	}

	for p.backtracks < p.BacktrackLimit && !noTest &&
		!(findTest && attempts == p.Patterns) {

		wpi := p.TestPossible(fault)
		if wpi != nil {
			wpi.Changed = true
			p.pushDecision(wpi)
		} else {
			// No test possible under this assignment, backtrack
			if wpi = p.backtrack(); wpi == nil {
				noTest = true
			}
		}

		// Re-simulate under the new assignment; on success keep flipping
		// decisions until the requested pattern count is met
		for wpi != nil {
			c.Simulate()
			if wfault := p.FaultEvaluate(fault); wfault != nil {
				p.ForwardImply(wfault)
			}
			if !c.CheckTest() {
				break
			}

			findTest = true
			if p.Patterns > 1 {
				if attempts == 0 {
					fmt.Fprintf(p.Out, "# %s\n", fault)
				}
				p.writeCube()
			}
			attempts++
			if attempts >= p.Patterns {
				break
			}

			if wpi = p.backtrack(); wpi == nil {
				noTest = true
			}
		}
	}

	for _, w := range p.decisionTree {
		w.AllAssigned = false
	}
	p.decisionTree = p.decisionTree[:0]
	UnmarkPropagateTree(fault.Gate)

	p.Stats.Backtracks += p.backtracks
	p.Stats.TotalTime += time.Since(start)

	switch {
	case findTest:
		p.Stats.TestsFound++
		if p.Patterns == 1 {
			p.fillPattern()
			p.writePattern()
		} else {
			fmt.Fprintln(p.Out)
		}
		p.Logger.Info("%s: %s, %d backtracks", fault, TestFound, p.backtracks)
		return TestFound, p.backtracks
	case noTest:
		p.Stats.Untestable++
		p.Logger.Info("%s: %s, %d backtracks", fault, Untestable, p.backtracks)
		return Untestable, p.backtracks
	default:
		p.Stats.Aborted++
		p.Logger.Info("%s: %s at backtrack limit %d", fault, Aborted, p.BacktrackLimit)
		return Aborted, p.backtracks
	}
}

// RunAll runs test generation over a fault list and returns the number of
// detected, untestable, and aborted faults
func (p *Podem) RunAll(faults []*circuit.Fault) (detected, untestable, aborted int) {
	p.Logger.Info("starting test generation for %d faults", len(faults))

	for _, fault := range faults {
		result, _ := p.FindTest(fault)
		switch result {
		case TestFound:
			detected++
		case Untestable:
			untestable++
		case Aborted:
			aborted++
		}
	}

	coverage := 0.0
	if len(faults) > 0 {
		coverage = float64(detected) / float64(len(faults)) * 100
	}
	p.Logger.Info("detected %d, untestable %d, aborted %d (coverage %.2f%%)",
		detected, untestable, aborted, coverage)
	p.Logger.Info("decisions %d, backtracks %d, max depth %d, total time %v",
		p.Stats.Decisions, p.Stats.Backtracks, p.Stats.MaxDecisionDepth, p.Stats.TotalTime)

	return detected, untestable, aborted
}

// MarkPropagateTree marks every gate in the transitive fanout of n.
// Already-marked gates short-circuit the recursion, so the walk is
// idempotent and safe on reconvergent fanout.
func MarkPropagateTree(n *circuit.Gate) {
	if n.Marked {
		return
	}
	n.Marked = true
	if n.Output == nil {
		return
	}
	for _, fanout := range n.Output.OutputGates {
		MarkPropagateTree(fanout)
	}
}

// UnmarkPropagateTree clears the marks set by MarkPropagateTree
func UnmarkPropagateTree(n *circuit.Gate) {
	if !n.Marked {
		return
	}
	n.Marked = false
	if n.Output == nil {
		return
	}
	for _, fanout := range n.Output.OutputGates {
		UnmarkPropagateTree(fanout)
	}
}

// fillPattern completes a single-pattern result: PIs still at X get a
// random bit, composite values resolve to their good-machine bit.
func (p *Podem) fillPattern() {
	for _, in := range p.Circuit.Inputs {
		switch in.Value {
		case circuit.Zero, circuit.One:
		case circuit.D:
			in.Value = circuit.One
		case circuit.Dnot:
			in.Value = circuit.Zero
		case circuit.X:
			if p.rng.Intn(2) == 1 {
				in.Value = circuit.One
			} else {
				in.Value = circuit.Zero
			}
		}
	}
}

// writePattern emits the current fully-specified PI vector
func (p *Podem) writePattern() {
	test := p.Circuit.CurrentTest()
	parts := make([]string, len(test))
	for i, v := range test {
		if v == circuit.One {
			parts[i] = "1"
		} else {
			parts[i] = "0"
		}
	}
	fmt.Fprintln(p.Out, strings.Join(parts, " "))
}

// writeCube emits the current test cube, printing unassigned PIs as x
func (p *Podem) writeCube() {
	test := p.Circuit.CurrentTest()
	parts := make([]string, len(test))
	for i, v := range test {
		switch v.Good() {
		case circuit.Zero:
			parts[i] = "0"
		case circuit.One:
			parts[i] = "1"
		default:
			parts[i] = "x"
		}
	}
	fmt.Fprintln(p.Out, strings.Join(parts, " "))
}
