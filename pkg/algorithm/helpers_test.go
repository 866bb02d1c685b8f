package algorithm_test

import (
	"bytes"
	"io"

	"github.com/fyerfyer/podem-atpg/pkg/algorithm"
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
	"github.com/fyerfyer/podem-atpg/pkg/utils"
)

// newTestPodem wraps a circuit in a quiet Podem that writes patterns into
// a capture buffer
func newTestPodem(c *circuit.Circuit) (*algorithm.Podem, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	p := algorithm.NewPodem(c, utils.NewWriterLogger(utils.ErrorLevel, io.Discard))
	p.Out = buf
	return p, buf
}

type builder struct {
	c        *circuit.Circuit
	nextLine int
	nextGate int
}

func newBuilder(name string) *builder {
	return &builder{c: circuit.NewCircuit(name)}
}

func (b *builder) line(name string, t circuit.LineType) *circuit.Line {
	l := circuit.NewLine(b.nextLine, name, t)
	b.nextLine++
	b.c.AddLine(l)
	return l
}

func (b *builder) gate(t circuit.GateType, out *circuit.Line, ins ...*circuit.Line) *circuit.Gate {
	g := circuit.NewGate(b.nextGate, "g"+out.Name, t)
	b.nextGate++
	for _, in := range ins {
		g.AddInput(in)
	}
	g.SetOutput(out)
	b.c.AddGate(g)
	return g
}

func (b *builder) done() *circuit.Circuit {
	b.c.Finalize()
	return b.c
}

// buildGate2 builds z = <gt>(a, b) with z as the only PO
func buildGate2(gt circuit.GateType) *circuit.Circuit {
	b := newBuilder("gate2")
	a := b.line("a", circuit.PrimaryInput)
	bb := b.line("b", circuit.PrimaryInput)
	z := b.line("z", circuit.PrimaryOutput)
	b.gate(gt, z, a, bb)
	return b.done()
}

// buildOr3 builds z = OR(a, b, c) with z as the only PO
func buildOr3() *circuit.Circuit {
	b := newBuilder("or3")
	a := b.line("a", circuit.PrimaryInput)
	bb := b.line("b", circuit.PrimaryInput)
	cc := b.line("c", circuit.PrimaryInput)
	z := b.line("z", circuit.PrimaryOutput)
	b.gate(circuit.OR, z, a, bb, cc)
	return b.done()
}

// buildChain builds pi -> NOT -> mid -> NOT -> out with out as PO
func buildChain() *circuit.Circuit {
	b := newBuilder("chain")
	pi := b.line("pi", circuit.PrimaryInput)
	mid := b.line("mid", circuit.Normal)
	out := b.line("out", circuit.PrimaryOutput)
	b.gate(circuit.NOT, mid, pi)
	b.gate(circuit.NOT, out, mid)
	return b.done()
}

// buildNestedAnd builds u = AND(a, b), z = AND(u, c) with z as PO
func buildNestedAnd() *circuit.Circuit {
	b := newBuilder("nested")
	a := b.line("a", circuit.PrimaryInput)
	bb := b.line("b", circuit.PrimaryInput)
	cc := b.line("c", circuit.PrimaryInput)
	u := b.line("u", circuit.Normal)
	z := b.line("z", circuit.PrimaryOutput)
	b.gate(circuit.AND, u, a, bb)
	b.gate(circuit.AND, z, u, cc)
	return b.done()
}

// buildRedundantOr builds z = OR(a, s) where s = OR(c, NOT(c)) is always 1,
// which makes a stuck-at-1 on the z gate's a-input undetectable
func buildRedundantOr() *circuit.Circuit {
	b := newBuilder("redundant")
	a := b.line("a", circuit.PrimaryInput)
	cc := b.line("c", circuit.PrimaryInput)
	n := b.line("n", circuit.Normal)
	s := b.line("s", circuit.Normal)
	z := b.line("z", circuit.PrimaryOutput)
	b.gate(circuit.NOT, n, cc)
	b.gate(circuit.OR, s, cc, n)
	b.gate(circuit.OR, z, a, s)
	return b.done()
}

// buildDangling builds u = AND(a, b) with no path to the PO z = BUF(c),
// so u's faults have no X-path to any output
func buildDangling() *circuit.Circuit {
	b := newBuilder("dangling")
	a := b.line("a", circuit.PrimaryInput)
	bb := b.line("b", circuit.PrimaryInput)
	cc := b.line("c", circuit.PrimaryInput)
	u := b.line("u", circuit.Normal)
	z := b.line("z", circuit.PrimaryOutput)
	b.gate(circuit.AND, u, a, bb)
	b.gate(circuit.BUF, z, cc)
	return b.done()
}

func outputFault(c *circuit.Circuit, lineName string, ft circuit.FaultType) *circuit.Fault {
	f, err := circuit.FaultOnLine(c.LineByName(lineName), ft)
	if err != nil {
		panic(err)
	}
	return f
}

// goodSimulate runs a fault-free simulation of the circuit under the given
// PI assignment and returns the value of the named line
func goodSimulate(c *circuit.Circuit, assignment map[string]circuit.LogicValue, probe string) circuit.LogicValue {
	c.Reset()
	for name, v := range assignment {
		l := c.LineByName(name)
		l.Value = v
		l.Changed = true
	}
	c.Simulate()
	return c.LineByName(probe).Value
}
