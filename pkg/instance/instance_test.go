package instance

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// tiny is the instance every fixture except the fis one encodes.
var tiny = Document{
	UniverseSize: 4,
	Weights:      []int{4, 4, 4, 3},
	Sets:         [][]int{{0, 1}, {1, 2}, {0, 2}, {3}},
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/rail507", "rail"},
		{"data/dblp-2k.txt", "dblp"},
		{"data/accidents.dat", "fis"},
		{"data/scp41.txt", "orlib"},
		{"data/instance.JSON", "json"},
		{"rail/scp41.txt", "orlib"},
		{"", "orlib"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Detect(tt.path).Name(); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetectCustomFormats(t *testing.T) {
	if got := Detect("rail507", FIS{}); got.Name() != "orlib" {
		t.Errorf("Detect with no matching format = %s, want orlib fallback", got.Name())
	}
}

func TestByName(t *testing.T) {
	for _, f := range Formats() {
		got, err := ByName(strings.ToUpper(f.Name()))
		if err != nil {
			t.Fatalf("ByName(%s): %v", f.Name(), err)
		}
		if got.Name() != f.Name() {
			t.Errorf("ByName(%s) = %s", f.Name(), got.Name())
		}
	}
	if _, err := ByName("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ByName(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadFixtures(t *testing.T) {
	for _, name := range []string{"scp_tiny.txt", "rail_tiny.txt", "dblp_tiny.txt", "tiny.json"} {
		t.Run(name, func(t *testing.T) {
			p, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := NewDocument(p); !reflect.DeepEqual(got, tiny) {
				t.Errorf("Load(%s) = %+v, want %+v", name, got, tiny)
			}
		})
	}
}

func TestLoadFIS(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "accidents_tiny.dat"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Document{
		UniverseSize: 4,
		Weights:      []int{1, 1, 1},
		Sets:         [][]int{{0, 1}, {2, 3}, {1, 2}},
	}
	if got := NewDocument(p); !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"orlib truncated", ORLib{}, "4 4\n4 4 4"},
		{"orlib bad set number", ORLib{}, "1 1\n5\n1 2\n"},
		{"orlib non-numeric", ORLib{}, "4 x\n"},
		{"orlib zero sets", ORLib{}, "4 0\n"},
		{"rail element outside universe", Rail{}, "2 1\n1 1 3\n"},
		{"rail zero weight", Rail{}, "1 1\n0 1 1\n"},
		{"dblp short header", DBLP{}, "4\n1 1\n"},
		{"dblp missing sets", DBLP{}, "2 2\n1 1\n"},
		{"fis empty", FIS{}, ""},
		{"json unknown field", JSON{}, `{"universe_size":1,"weights":[1],"sets":[[0]],"x":1}`},
		{"json mismatched lengths", JSON{}, `{"universe_size":1,"weights":[1,2],"sets":[[0]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.format.Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("%s.Parse(%q) succeeded, want error", tt.format.Name(), tt.input)
			}
		})
	}
}

func TestLoadWrapsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scp_bad.txt")
	if err := writeFile(path, "4 4\n1 1\n"); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidInstance) {
		t.Errorf("Load(truncated) error = %v, want INVALID_INSTANCE", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	p, err := tiny.Problem()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, p); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := JSON{}.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := NewDocument(back); !reflect.DeepEqual(got, tiny) {
		t.Errorf("round-tripped document = %+v, want %+v", got, tiny)
	}

	covers, err := setcover.Enumerate(t.Context(), back, setcover.Options{MaxResults: 1, OnlyMinimal: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []setcover.Cover{{Rank: 1, Weight: 11, Sets: []int{0, 1, 3}}}
	if !reflect.DeepEqual(covers, want) {
		t.Errorf("first cover of round-tripped instance = %+v, want %+v", covers, want)
	}
}
