package render

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Converter is the external SVG converter binary.
var Converter = "rsvg-convert"

// ToPDF converts an SVG document to a single-page PDF. It needs
// [Converter] on PATH and fails with UNSUPPORTED otherwise.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// HasConverter reports whether [Converter] is on PATH.
func HasConverter() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

func convert(svg []byte, format string) ([]byte, error) {
	path, err := exec.LookPath(Converter)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s (apt install librsvg2-bin, brew install librsvg)", format, Converter)
	}

	var out, stderr bytes.Buffer
	cmd := exec.Command(path, "-f", format)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
