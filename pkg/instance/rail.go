package instance

import (
	"io"
	"strings"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// Rail reads the OR-Library railway layout: "universe numSets", then per set
// "weight size e1 ... e_size".
type Rail struct{}

func (Rail) Name() string { return "rail" }

func (Rail) Supports(filename string) bool {
	return strings.Contains(filename, "rail")
}

func (Rail) Parse(r io.Reader) (*setcover.Problem, error) {
	t := newTokens(r)
	universe, err := t.int("universe size")
	if err != nil {
		return nil, err
	}
	numSets, err := t.int("set count")
	if err != nil {
		return nil, err
	}
	if err := checkCounts(universe, numSets); err != nil {
		return nil, err
	}

	weights := make([]int, numSets)
	members := make([][]int, numSets)
	for i := range numSets {
		if weights[i], err = t.int("weight"); err != nil {
			return nil, err
		}
		size, err := t.int("set size")
		if err != nil {
			return nil, err
		}
		elems := make([]int, size)
		for j := range elems {
			if elems[j], err = t.int("element"); err != nil {
				return nil, err
			}
		}
		members[i] = zeroBased(elems)
	}
	return setcover.NewProblem(universe, weights, members)
}
