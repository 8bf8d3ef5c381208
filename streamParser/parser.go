//Package streamParser reads the ~.<channel>@<values> line protocol back into points. Lines that are not part of
//the protocol are handed on unchanged
package streamParser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

//Kind describes how many coordinates a point carries
type Kind int

const (
	//KindD1 points carry a single value
	KindD1 Kind = iota + 1
	//KindD2 points carry x and y
	KindD2
	//KindD3 points carry x, y and z
	KindD3
)

func (k Kind) String() string {
	switch k {
	case KindD1:
		return "D1"
	case KindD2:
		return "D2"
	case KindD3:
		return "D3"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

//maxValues is the largest number of values taken from a line, further values are ignored
const maxValues = 3

//Point is a parsed protocol line
type Point struct {
	Channel string
	Values  []float64
}

//Kind derives the point kind from the number of values
func (p Point) Kind() Kind {
	return Kind(len(p.Values))
}

var decimalRegex = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?$`)

//ParseLine parses line as a protocol line. The second return value is false if line is not a valid point, i.e. the
//prefix is missing, the channel is empty or the first value is not a decimal number. Parsing stops at the first
//token that is not a decimal number and at most three values are kept
func ParseLine(line string) (Point, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "~.") {
		return Point{}, false
	}
	rest := line[2:]
	at := strings.IndexByte(rest, '@')
	if at <= 0 {
		return Point{}, false
	}
	p := Point{
		Channel: rest[:at],
		Values:  make([]float64, 0, maxValues),
	}
	for _, token := range strings.Split(rest[at+1:], ",") {
		if len(p.Values) == maxValues {
			break
		}
		token = strings.TrimSpace(token)
		if !decimalRegex.MatchString(token) {
			break
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			break
		}
		p.Values = append(p.Values, v)
	}
	if len(p.Values) == 0 {
		return Point{}, false
	}
	return p, true
}

//Scan reads r line by line. Every protocol line is parsed and passed to onPoint, every other line is copied to
//passthrough (if passthrough is not nil). Scan stops at the first error returned by onPoint
func Scan(r io.Reader, passthrough io.Writer, onPoint func(p Point) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	lineNr := 0
	for scanner.Scan() {
		lineNr++
		line := scanner.Text()
		p, ok := ParseLine(line)
		if !ok {
			if passthrough == nil {
				continue
			}
			if _, err := io.WriteString(passthrough, line+"\n"); err != nil {
				return fmt.Errorf("failed to pass through line %v : %v", lineNr, err)
			}
			continue
		}
		if err := onPoint(p); err != nil {
			return fmt.Errorf("line %v : %w", lineNr, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error scanning for lines : %v", err)
	}
	return nil
}
