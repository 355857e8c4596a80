// Package instance parses problem-instance files into the raw item-size
// slices package engine needs to build a Problem: the uniform benchmark
// format experiment reads, the BPP-lib format experiment2 reads, and a
// spreadsheet format for ad hoc item lists.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedInstance is wrapped into a descriptive error whenever a text
// instance file doesn't match the format its parser expects.
var ErrMalformedInstance = errors.New("malformed instance file")

// ParseUniform reads the uniform benchmark format: newline-separated lines,
// '#'-prefixed lines are comments, and each remaining line is a
// whitespace-separated list of item sizes forming one problem instance.
// The returned slice has one entry per non-comment, non-blank line.
func ParseUniform(r io.Reader) ([][]uint32, error) {
	var instances [][]uint32

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		sizes := make([]uint32, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("uniform instance line %d: %w: %q is not an item size", lineNum, ErrMalformedInstance, f)
			}
			sizes = append(sizes, uint32(v))
		}
		instances = append(instances, sizes)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("uniform instance: %w", err)
	}

	return instances, nil
}

// BPPLibInstance is one BPP-lib benchmark: its declared bin count and bin
// capacity, and the item sizes drawn from the second column of its index/
// size pairs.
type BPPLibInstance struct {
	BinCount    uint32
	BinCapacity uint32
	Sizes       []uint32
}

// ParseBPPLib reads the BPP-lib text format: three ignored header lines,
// then two "word word word <int>" lines giving the bin count and bin
// capacity in their last field, then one "index size" pair per remaining
// line — only the size (second) column is an item size.
func ParseBPPLib(r io.Reader) (BPPLibInstance, error) {
	var inst BPPLibInstance

	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 8)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return inst, fmt.Errorf("bpp-lib instance: %w", err)
	}

	if len(lines) < 5 {
		return inst, fmt.Errorf("bpp-lib instance: %w: expected at least 5 lines, got %d", ErrMalformedInstance, len(lines))
	}

	binCount, err := lastFieldAsUint(lines[3])
	if err != nil {
		return inst, fmt.Errorf("bpp-lib instance line 4 (bin count): %w", err)
	}
	inst.BinCount = binCount

	binCapacity, err := lastFieldAsUint(lines[4])
	if err != nil {
		return inst, fmt.Errorf("bpp-lib instance line 5 (bin capacity): %w", err)
	}
	inst.BinCapacity = binCapacity

	for i := 5; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return inst, fmt.Errorf("bpp-lib instance line %d: %w: expected an index/size pair, got %q", i+1, ErrMalformedInstance, line)
		}
		v, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return inst, fmt.Errorf("bpp-lib instance line %d: %w: %q is not an item size", i+1, ErrMalformedInstance, fields[1])
		}
		inst.Sizes = append(inst.Sizes, uint32(v))
	}

	return inst, nil
}

func lastFieldAsUint(line string) (uint32, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty header line", ErrMalformedInstance)
	}
	v, err := strconv.ParseUint(fields[len(fields)-1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: last field %q is not an integer", ErrMalformedInstance, fields[len(fields)-1])
	}
	return uint32(v), nil
}
