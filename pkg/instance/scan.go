package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// tokens reads whitespace-separated integers.
type tokens struct {
	sc *bufio.Scanner
	n  int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

func (t *tokens) int(what string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("unexpected end of input reading %s", what)
	}
	t.n++
	v, err := strconv.Atoi(t.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("token %d (%s): %w", t.n, what, err)
	}
	return v, nil
}

// lines yields non-blank lines.
type lines struct {
	sc   *bufio.Scanner
	line int
}

func newLines(r io.Reader) *lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lines{sc: sc}
}

// next returns the integers on the next non-blank line.
func (l *lines) next(what string) ([]int, error) {
	for l.sc.Scan() {
		l.line++
		fields := strings.Fields(l.sc.Text())
		if len(fields) == 0 {
			continue
		}
		out := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d (%s): %w", l.line, what, err)
			}
			out[i] = v
		}
		return out, nil
	}
	if err := l.sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of input reading %s", what)
}

// header reads the two leading integers of a file, which may share a line
// with nothing else.
func (l *lines) header() (int, int, error) {
	h, err := l.next("header")
	if err != nil {
		return 0, 0, err
	}
	if len(h) != 2 {
		return 0, 0, fmt.Errorf("line %d: header must have 2 fields, got %d", l.line, len(h))
	}
	return h[0], h[1], nil
}

func checkCounts(universe, numSets int) error {
	if universe <= 0 || numSets <= 0 {
		return fmt.Errorf("header declares universe %d and %d sets", universe, numSets)
	}
	return nil
}

// zeroBased converts 1-based element numbers in place.
func zeroBased(elems []int) []int {
	for i := range elems {
		elems[i]--
	}
	return elems
}
