package cache

// Keyer generates cache keys. Implementations must return equal keys for
// equal inputs and distinct keys whenever any input differs.
type Keyer interface {
	// ResultKey identifies an enumeration result.
	ResultKey(problemHash string, opts ResultKeyOpts) string

	// OptimumKey identifies the exact optimum of an instance.
	OptimumKey(problemHash string) string
}

// ResultKeyOpts holds the run parameters that change an enumeration result.
type ResultKeyOpts struct {
	MaxResults  int    `json:"max_results"`
	OnlyMinimal bool   `json:"only_minimal"`
	Threshold   string `json:"threshold"`
	Interval    int    `json:"interval"`
}

// DefaultKeyer builds keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key generator.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey generates a key for an enumeration result.
func (DefaultKeyer) ResultKey(problemHash string, opts ResultKeyOpts) string {
	return hashKey("result", problemHash, opts)
}

// OptimumKey generates a key for an exact optimum.
func (DefaultKeyer) OptimumKey(problemHash string) string {
	return hashKey("optimum", problemHash)
}
