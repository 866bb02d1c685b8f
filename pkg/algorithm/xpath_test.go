package algorithm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

func expectNoVisitedMarks(c *circuit.Circuit) {
	for _, l := range c.Lines {
		ExpectWithOffset(1, l.Visited).To(BeFalse(), "line %s", l.Name)
	}
}

var _ = Describe("TraceUnknownPath", func() {
	It("is immediately true on a primary output", func() {
		c := buildChain()
		p, _ := newTestPodem(c)

		out := c.LineByName("out")
		out.Value = circuit.One // value is irrelevant for a PO
		Expect(p.TraceUnknownPath(out)).To(BeTrue())
		expectNoVisitedMarks(c)
	})

	It("finds an all-unknown path to the output", func() {
		c := buildChain()
		p, _ := newTestPodem(c)

		Expect(p.TraceUnknownPath(c.LineByName("pi"))).To(BeTrue())
		expectNoVisitedMarks(c)
	})

	It("fails when every path is blocked by an assigned line", func() {
		c := buildChain()
		p, _ := newTestPodem(c)

		c.LineByName("out").Value = circuit.One
		Expect(p.TraceUnknownPath(c.LineByName("pi"))).To(BeFalse())
		expectNoVisitedMarks(c)
	})

	It("fails on a line with no fanout at all", func() {
		c := buildDangling()
		p, _ := newTestPodem(c)

		Expect(p.TraceUnknownPath(c.LineByName("u"))).To(BeFalse())
		expectNoVisitedMarks(c)
	})

	It("survives reconvergent fanout", func() {
		c := buildRedundantOr()
		p, _ := newTestPodem(c)

		// c fans out into the NOT and the inner OR; both paths reconverge
		Expect(p.TraceUnknownPath(c.LineByName("c"))).To(BeTrue())
		expectNoVisitedMarks(c)
	})

	It("ignores paths through faulty values", func() {
		c := buildNestedAnd()
		p, _ := newTestPodem(c)

		// u carries the fault effect; only X lines may extend the path
		c.LineByName("u").Value = circuit.D
		c.LineByName("z").Value = circuit.D
		Expect(p.TraceUnknownPath(c.LineByName("u"))).To(BeFalse())
		expectNoVisitedMarks(c)
	})
})
