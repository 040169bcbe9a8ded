package instance

import (
	"fmt"
	"io"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// ORLib reads the OR-Library scp layout: "universe numSets", numSets
// weights, then for every element a count followed by that many set numbers.
type ORLib struct{}

func (ORLib) Name() string { return "orlib" }

// Supports accepts every name; ORLib is the fallback format.
func (ORLib) Supports(string) bool { return true }

func (ORLib) Parse(r io.Reader) (*setcover.Problem, error) {
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
	for i := range weights {
		if weights[i], err = t.int("weight"); err != nil {
			return nil, err
		}
	}

	members := make([][]int, numSets)
	for e := range universe {
		count, err := t.int("cover count")
		if err != nil {
			return nil, err
		}
		for range count {
			s, err := t.int("set number")
			if err != nil {
				return nil, err
			}
			if s < 1 || s > numSets {
				return nil, fmt.Errorf("element %d: set number %d outside [1, %d]", e+1, s, numSets)
			}
			members[s-1] = append(members[s-1], e)
		}
	}
	return setcover.NewProblem(universe, weights, members)
}
