package cubelut

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// crlf terminates every output line; third-party LUT consumers expect
// Windows-style endings regardless of host platform.
const crlf = "\r\n"

// Write renders the LUT in .cube format with CRLF line endings. Rows
// follow the format convention: red index fastest, then green, then
// blue.
func (l *LUT) Write(w io.Writer) error {
	if err := l.validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# Created by lutreverse" + crlf)
	if l.Title != "" {
		fmt.Fprintf(&buf, "TITLE %q%s", l.Title, crlf)
	}
	fmt.Fprintf(&buf, "LUT_3D_SIZE %d%s", l.Size, crlf)
	fmt.Fprintf(&buf, "DOMAIN_MIN %g %g %g%s", l.DomainMin[0], l.DomainMin[1], l.DomainMin[2], crlf)
	fmt.Fprintf(&buf, "DOMAIN_MAX %g %g %g%s", l.DomainMax[0], l.DomainMax[1], l.DomainMax[2], crlf)
	for _, c := range l.Samples {
		fmt.Fprintf(&buf, "%.6f %.6f %.6f%s", c.R, c.G, c.B, crlf)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile renders the whole LUT in memory first and writes it in one
// shot, so a failure never leaves a partial file behind.
func (l *LUT) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := l.Write(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
