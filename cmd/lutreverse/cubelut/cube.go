package cubelut

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultSize is the grid resolution assumed when a .cube file does not
// declare one.
const DefaultSize = 33

// LUT is a 3D lookup table as stored in a .cube file. Samples follow
// the .cube body convention: the red index varies fastest, then green,
// then blue.
type LUT struct {
	Title     string
	Size      int
	DomainMin [3]float64
	DomainMax [3]float64
	Samples   []colorful.Color
}

// Index returns the sample position for grid coordinates r, g, b.
func (l *LUT) Index(r, g, b int) int {
	return (b*l.Size+g)*l.Size + r
}

func (l *LUT) validate() error {
	if l.Size < 2 {
		return fmt.Errorf("LUT size must be at least 2, got %d", l.Size)
	}
	if want := l.Size * l.Size * l.Size; len(l.Samples) != want {
		return fmt.Errorf("LUT of size %d needs %d samples, got %d", l.Size, want, len(l.Samples))
	}
	return nil
}

// ParseFile reads a .cube file from disk.
func ParseFile(path string) (*LUT, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads the .cube text format: optional # comments, TITLE,
// LUT_3D_SIZE, DOMAIN_MIN/DOMAIN_MAX header lines followed by N^3 rows
// of three floats each, red index fastest. A missing LUT_3D_SIZE is
// tolerated when the row count is a perfect cube.
func Parse(r io.Reader) (*LUT, error) {
	lut := &LUT{
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
	}

	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "TITLE":
			lut.Title = strings.Trim(strings.TrimSpace(line[len("TITLE"):]), `"`)
		case "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: LUT_3D_SIZE expects one argument", ln)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid LUT_3D_SIZE %q", ln, fields[1])
			}
			if n < 2 {
				return nil, fmt.Errorf("line %d: LUT_3D_SIZE must be at least 2, got %d", ln, n)
			}
			lut.Size = n
		case "LUT_1D_SIZE":
			return nil, fmt.Errorf("line %d: 1D LUTs are not supported", ln)
		case "DOMAIN_MIN":
			if err := parseTriple(fields[1:], &lut.DomainMin); err != nil {
				return nil, fmt.Errorf("line %d: DOMAIN_MIN: %v", ln, err)
			}
		case "DOMAIN_MAX":
			if err := parseTriple(fields[1:], &lut.DomainMax); err != nil {
				return nil, fmt.Errorf("line %d: DOMAIN_MAX: %v", ln, err)
			}
		default:
			var v [3]float64
			if err := parseTriple(fields, &v); err != nil {
				return nil, fmt.Errorf("line %d: %v", ln, err)
			}
			lut.Samples = append(lut.Samples, colorful.Color{R: v[0], G: v[1], B: v[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if lut.Size == 0 {
		n := int(math.Round(math.Cbrt(float64(len(lut.Samples)))))
		if n < 2 || n*n*n != len(lut.Samples) {
			return nil, fmt.Errorf("missing LUT_3D_SIZE and %d rows is not a cube", len(lut.Samples))
		}
		lut.Size = n
	}
	if err := lut.validate(); err != nil {
		return nil, err
	}
	return lut, nil
}

func parseTriple(fields []string, out *[3]float64) error {
	if len(fields) != 3 {
		return fmt.Errorf("expect 3 values, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", f)
		}
		out[i] = v
	}
	return nil
}
