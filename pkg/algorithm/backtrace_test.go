package algorithm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fyerfyer/podem-atpg/pkg/algorithm"
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

var _ = Describe("FindPIAssignment", func() {
	It("assigns a PI objective directly", func() {
		c := buildGate2(circuit.AND)
		p, _ := newTestPodem(c)

		a := c.LineByName("a")
		Expect(p.FindPIAssignment(a, circuit.One)).To(Equal(a))
		Expect(a.Value).To(Equal(circuit.One))
	})

	It("picks the hardest unknown input for a non-controlling AND objective", func() {
		c := buildGate2(circuit.AND)
		p, _ := newTestPodem(c)

		got := p.FindPIAssignment(c.LineByName("z"), circuit.One)

		Expect(got).To(Equal(c.LineByName("b")))
		Expect(got.Value).To(Equal(circuit.One))
		Expect(c.LineByName("a").Value).To(Equal(circuit.X))
	})

	It("picks the easiest unknown input for a controlling AND objective", func() {
		c := buildGate2(circuit.AND)
		p, _ := newTestPodem(c)

		got := p.FindPIAssignment(c.LineByName("z"), circuit.Zero)

		Expect(got).To(Equal(c.LineByName("a")))
		Expect(got.Value).To(Equal(circuit.Zero))
	})

	It("flips the objective level through a NAND", func() {
		c := buildGate2(circuit.NAND)
		p, _ := newTestPodem(c)

		// NAND output 0 needs every input at 1: hardest input, flipped level
		got := p.FindPIAssignment(c.LineByName("z"), circuit.Zero)

		Expect(got).To(Equal(c.LineByName("b")))
		Expect(got.Value).To(Equal(circuit.One))
	})

	It("selects a controlling input for an OR objective of 1", func() {
		c := buildGate2(circuit.OR)
		p, _ := newTestPodem(c)

		got := p.FindPIAssignment(c.LineByName("z"), circuit.One)

		Expect(got).To(Equal(c.LineByName("a")))
		Expect(got.Value).To(Equal(circuit.One))
	})

	It("descends through a NOT with an inverted objective", func() {
		c := buildChain()
		p, _ := newTestPodem(c)

		got := p.FindPIAssignment(c.LineByName("mid"), circuit.One)

		Expect(got).To(Equal(c.LineByName("pi")))
		Expect(got.Value).To(Equal(circuit.Zero))
	})

	It("returns nil when no unknown input remains", func() {
		c := buildGate2(circuit.AND)
		p, _ := newTestPodem(c)
		c.LineByName("a").Value = circuit.One
		c.LineByName("b").Value = circuit.Zero

		Expect(p.FindPIAssignment(c.LineByName("z"), circuit.One)).To(BeNil())
	})
})

var _ = Describe("control selection", func() {
	It("orders easiest before hardest by input level", func() {
		c := buildNestedAnd()
		gz := c.LineByName("z").InputGate

		// gz inputs are (c, u) after levelization: c at level 0, u at level 1
		Expect(algorithm.FindEasiestControl(gz)).To(Equal(c.LineByName("c")))
		Expect(algorithm.FindHardestControl(gz)).To(Equal(c.LineByName("u")))
	})

	It("skips assigned inputs", func() {
		c := buildNestedAnd()
		gz := c.LineByName("z").InputGate
		c.LineByName("c").Value = circuit.One

		Expect(algorithm.FindEasiestControl(gz)).To(Equal(c.LineByName("u")))

		c.LineByName("u").Value = circuit.Zero
		Expect(algorithm.FindEasiestControl(gz)).To(BeNil())
		Expect(algorithm.FindHardestControl(gz)).To(BeNil())
	})
})
