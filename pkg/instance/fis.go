package instance

import (
	"io"
	"strings"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// FIS reads frequent-itemset data: "numSets universe" followed by one line
// of elements per set. Every set has weight 1.
type FIS struct{}

func (FIS) Name() string { return "fis" }

func (FIS) Supports(filename string) bool {
	return strings.Contains(filename, "accidents")
}

func (FIS) Parse(r io.Reader) (*setcover.Problem, error) {
	l := newLines(r)
	numSets, universe, err := l.header()
	if err != nil {
		return nil, err
	}
	if err := checkCounts(universe, numSets); err != nil {
		return nil, err
	}

	weights := make([]int, numSets)
	members := make([][]int, numSets)
	for i := range numSets {
		row, err := l.next("set")
		if err != nil {
			return nil, err
		}
		weights[i] = 1
		members[i] = zeroBased(row)
	}
	return setcover.NewProblem(universe, weights, members)
}
