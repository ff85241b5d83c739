package cubelut

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

const identity2 = `# a comment
TITLE "Test LUT"
LUT_3D_SIZE 2
DOMAIN_MIN 0.0 0.0 0.0
DOMAIN_MAX 1.0 1.0 1.0
0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
0.0 1.0 1.0
1.0 1.0 1.0
`

func TestParseBasic(t *testing.T) {
	lut, err := Parse(strings.NewReader(identity2))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lut.Title != "Test LUT" {
		t.Errorf("Expected title %q, got %q", "Test LUT", lut.Title)
	}
	if lut.Size != 2 {
		t.Errorf("Expected size 2, got %d", lut.Size)
	}
	if len(lut.Samples) != 8 {
		t.Fatalf("Expected 8 samples, got %d", len(lut.Samples))
	}
	// Red varies fastest: second row is the red corner.
	c := lut.Samples[lut.Index(1, 0, 0)]
	if c.R != 1.0 || c.G != 0.0 || c.B != 0.0 {
		t.Errorf("Expected red corner at index(1,0,0), got %v", c)
	}
}

func TestParseCRLF(t *testing.T) {
	crlfInput := strings.ReplaceAll(identity2, "\n", "\r\n")
	lut, err := Parse(strings.NewReader(crlfInput))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lut.Size != 2 {
		t.Errorf("Expected size 2, got %d", lut.Size)
	}
}

func TestParseInferredSize(t *testing.T) {
	// Body only, no LUT_3D_SIZE: 8 rows is a 2x2x2 cube.
	body := `0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
0.0 1.0 1.0
1.0 1.0 1.0
`
	lut, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lut.Size != 2 {
		t.Errorf("Expected inferred size 2, got %d", lut.Size)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"size too small", "LUT_3D_SIZE 1\n"},
		{"bad size", "LUT_3D_SIZE potato\n"},
		{"1D LUT", "LUT_1D_SIZE 2\n0.0 0.0 0.0\n1.0 1.0 1.0\n"},
		{"wrong sample count", "LUT_3D_SIZE 2\n0.0 0.0 0.0\n"},
		{"bad float", "LUT_3D_SIZE 2\n0.0 x 0.0\n"},
		{"row width", "LUT_3D_SIZE 2\n0.0 0.0\n"},
		{"no size not a cube", "0.0 0.0 0.0\n1.0 1.0 1.0\n"},
	}
	for _, tc := range cases {
		if _, err := Parse(strings.NewReader(tc.input)); err == nil {
			t.Errorf("%s: expected an error, got none", tc.name)
		}
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	orig := Identity(3)
	orig.Title = "Round Trip"

	var buf bytes.Buffer
	if err := orig.Write(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lut, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lut.Title != orig.Title {
		t.Errorf("Expected title %q, got %q", orig.Title, lut.Title)
	}
	if lut.Size != orig.Size {
		t.Fatalf("Expected size %d, got %d", orig.Size, lut.Size)
	}
	for i := range orig.Samples {
		if math.Abs(lut.Samples[i].R-orig.Samples[i].R) > 1e-6 ||
			math.Abs(lut.Samples[i].G-orig.Samples[i].G) > 1e-6 ||
			math.Abs(lut.Samples[i].B-orig.Samples[i].B) > 1e-6 {
			t.Fatalf("Sample %d differs: got %v, want %v", i, lut.Samples[i], orig.Samples[i])
		}
	}
}
