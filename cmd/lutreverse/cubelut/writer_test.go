package cubelut

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestWriteCRLF(t *testing.T) {
	var buf bytes.Buffer
	if err := Identity(2).Write(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b := buf.Bytes()
	lf := bytes.Count(b, []byte("\n"))
	crlf := bytes.Count(b, []byte("\r\n"))
	if lf == 0 || lf != crlf {
		t.Errorf("Expected every line CRLF-terminated: %d LF vs %d CRLF", lf, crlf)
	}
	if !bytes.HasSuffix(b, []byte("\r\n")) {
		t.Errorf("Expected trailing CRLF")
	}
}

func TestWriteHeaderAndBody(t *testing.T) {
	var buf bytes.Buffer
	if err := Identity(2).Write(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")

	if lines[0] != "# Created by lutreverse" {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if lines[1] != `TITLE "Identity LUT"` {
		t.Errorf("Unexpected TITLE line: %q", lines[1])
	}
	if lines[2] != "LUT_3D_SIZE 2" {
		t.Errorf("Unexpected size line: %q", lines[2])
	}
	body := lines[5:]
	if len(body) != 8 {
		t.Fatalf("Expected 8 body rows, got %d", len(body))
	}
	// Red index varies fastest: second row is the red corner.
	if body[1] != "1.000000 0.000000 0.000000" {
		t.Errorf("Expected red corner as second row, got %q", body[1])
	}
	if body[7] != "1.000000 1.000000 1.000000" {
		t.Errorf("Expected white corner as last row, got %q", body[7])
	}
}

func TestWriteRejectsBadSampleCount(t *testing.T) {
	lut := &LUT{
		Size:      2,
		DomainMax: [3]float64{1, 1, 1},
		Samples:   []colorful.Color{{R: 1}},
	}
	var buf bytes.Buffer
	if err := lut.Write(&buf); err == nil {
		t.Errorf("Expected an error for a short sample table, got none")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no partial output, got %d bytes", buf.Len())
	}
}
