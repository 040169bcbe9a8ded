package instance

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// Format parses one instance file layout.
type Format interface {
	// Parse reads an instance from r.
	Parse(r io.Reader) (*setcover.Problem, error)
	// Supports reports whether this format handles the given file name.
	Supports(filename string) bool
	// Name returns the format identifier (e.g. "rail", "orlib").
	Name() string
}

// Formats returns the built-in formats in detection order. ORLib is last
// and supports every name.
func Formats() []Format {
	return []Format{Rail{}, DBLP{}, FIS{}, JSON{}, ORLib{}}
}

// ByName returns the built-in format with the given name.
func ByName(name string) (Format, error) {
	for _, f := range Formats() {
		if f.Name() == strings.ToLower(name) {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown instance format %q", name)
}

// Detect returns the first format supporting the base name of path. With no
// formats given, the built-in list is used.
func Detect(path string, formats ...Format) Format {
	if len(formats) == 0 {
		formats = Formats()
	}
	name := filepath.Base(path)
	for _, f := range formats {
		if f.Supports(name) {
			return f
		}
	}
	return ORLib{}
}

// Load opens path, detects its format and parses it.
func Load(path string) (*setcover.Problem, error) {
	return LoadAs(path, Detect(path))
}

// LoadAs opens path and parses it with f.
func LoadAs(path string, f Format) (*setcover.Problem, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()

	p, err := f.Parse(file)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInstance, err, "parse %s as %s", filepath.Base(path), f.Name())
	}
	return p, nil
}
