package instance

import (
	"io"
	"strings"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// DBLP reads "universe numSets" followed by one line per set holding its
// weight and then its elements.
type DBLP struct{}

func (DBLP) Name() string { return "dblp" }

func (DBLP) Supports(filename string) bool {
	return strings.Contains(filename, "dblp")
}

func (DBLP) Parse(r io.Reader) (*setcover.Problem, error) {
	l := newLines(r)
	universe, numSets, err := l.header()
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
		weights[i] = row[0]
		members[i] = zeroBased(row[1:])
	}
	return setcover.NewProblem(universe, weights, members)
}
