package instance

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// Document is the JSON form of an instance. Elements are 0-based.
type Document struct {
	UniverseSize int     `json:"universe_size" yaml:"universe_size"`
	Weights      []int   `json:"weights" yaml:"weights"`
	Sets         [][]int `json:"sets" yaml:"sets"`
}

// NewDocument converts p to its JSON form.
func NewDocument(p *setcover.Problem) Document {
	d := Document{
		UniverseSize: p.UniverseSize(),
		Weights:      p.Weights(),
		Sets:         make([][]int, p.NumSets()),
	}
	for i := range d.Sets {
		d.Sets[i] = p.Elements(i)
	}
	return d
}

// Problem validates d and builds the instance.
func (d Document) Problem() (*setcover.Problem, error) {
	return setcover.NewProblem(d.UniverseSize, d.Weights, d.Sets)
}

// JSON reads and writes [Document].
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

func (JSON) Parse(r io.Reader) (*setcover.Problem, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return d.Problem()
}

// WriteJSON writes p as an indented [Document].
func WriteJSON(w io.Writer, p *setcover.Problem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(p))
}
