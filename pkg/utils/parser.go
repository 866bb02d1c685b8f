package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/fyerfyer/podem-atpg/pkg/circuit"
)

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	gateRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// ParseBenchFile reads a circuit description in BENCH format from a file
func ParseBenchFile(filename string) (*circuit.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open circuit file %s", filename)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), ".bench")
	c, err := ParseBench(file, name)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	return c, nil
}

// ParseBench reads a circuit description in BENCH format and returns a
// finalized (levelized, OUTPUT pseudo-gates attached) Circuit object
func ParseBench(r io.Reader, name string) (*circuit.Circuit, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read circuit description")
	}

	c := circuit.NewCircuit(name)

	// Maps from line names for easy lookup
	lineMap := make(map[string]*circuit.Line)
	nextLineID := 0
	nextGateID := 0

	ensureLine := func(name string, lineType circuit.LineType) *circuit.Line {
		if l, exists := lineMap[name]; exists {
			return l
		}
		l := circuit.NewLine(nextLineID, name, lineType)
		lineMap[name] = l
		c.AddLine(l)
		nextLineID++
		return l
	}

	// First pass: identify all lines (inputs, outputs, and internal wires)
	for _, text := range lines {
		if matches := inputRegex.FindStringSubmatch(text); matches != nil {
			ensureLine(matches[1], circuit.PrimaryInput)
			continue
		}

		if matches := outputRegex.FindStringSubmatch(text); matches != nil {
			lineName := matches[1]
			if l, exists := lineMap[lineName]; exists {
				if l.Type != circuit.PrimaryOutput {
					c.Outputs = append(c.Outputs, l)
				}
				l.Type = circuit.PrimaryOutput
			} else {
				ensureLine(lineName, circuit.PrimaryOutput)
			}
			continue
		}

		if matches := gateRegex.FindStringSubmatch(text); matches != nil {
			ensureLine(matches[1], circuit.Normal)
			for _, inputName := range strings.Split(matches[3], ",") {
				ensureLine(strings.TrimSpace(inputName), circuit.Normal)
			}
		}
	}

	// Second pass: create gates and connect them
	for _, text := range lines {
		matches := gateRegex.FindStringSubmatch(text)
		if matches == nil {
			continue
		}

		outputName := matches[1]
		gateType, err := parseGateType(strings.ToUpper(matches[2]))
		if err != nil {
			return nil, errors.Wrapf(err, "gate %s", outputName)
		}

		gate := circuit.NewGate(nextGateID, fmt.Sprintf("g%d", nextGateID), gateType)
		nextGateID++

		gate.SetOutput(lineMap[outputName])
		for _, inputName := range strings.Split(matches[3], ",") {
			gate.AddInput(lineMap[strings.TrimSpace(inputName)])
		}

		c.AddGate(gate)
	}

	c.Finalize()

	return c, nil
}

// parseGateType converts a BENCH gate name to a GateType
func parseGateType(typeString string) (circuit.GateType, error) {
	switch typeString {
	case "AND":
		return circuit.AND, nil
	case "OR":
		return circuit.OR, nil
	case "NOT", "INV":
		return circuit.NOT, nil
	case "NAND":
		return circuit.NAND, nil
	case "NOR":
		return circuit.NOR, nil
	case "XOR":
		return circuit.XOR, nil
	case "XNOR":
		return circuit.XNOR, nil
	case "BUF", "BUFF":
		return circuit.BUF, nil
	default:
		return circuit.BUF, errors.Errorf("unsupported gate type %s", typeString)
	}
}

// ParseFaultString parses a fault string like "a/0" or "net34/1" and
// returns the stem fault on the named line
func ParseFaultString(faultStr string, c *circuit.Circuit) (*circuit.Fault, error) {
	lineName, polarity, found := strings.Cut(faultStr, "/")
	if !found {
		return nil, errors.Errorf("invalid fault string format: %s", faultStr)
	}

	line := c.LineByName(lineName)
	if line == nil {
		return nil, errors.Errorf("line not found: %s", lineName)
	}

	var faultType circuit.FaultType
	switch polarity {
	case "0":
		faultType = circuit.Stuck0
	case "1":
		faultType = circuit.Stuck1
	default:
		return nil, errors.Errorf("invalid fault type: %s", polarity)
	}

	fault, err := circuit.FaultOnLine(line, faultType)
	if err != nil {
		return nil, errors.Wrap(err, "build fault")
	}
	return fault, nil
}
