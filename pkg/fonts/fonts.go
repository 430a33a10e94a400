// Package fonts locates and loads the label typeface for raster rendering.
//
// The PNG sink needs a real font face to measure and draw labels. A
// [Loader] tries an explicitly configured TrueType/OpenType file first, then
// a list of well-known system locations, and finally falls back to the
// built-in bitmap face from golang.org/x/image/font/basicfont. Loading never
// fails; a missing font only changes how labels look.
package fonts

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family used by the SVG sink.
const FontFamily = "Arial, sans-serif"

// Fallback names the built-in face reported by [Loader.Source].
const Fallback = "basicfont"

// SystemPaths are searched in order when no font path is configured.
var SystemPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// Loader parses a font file once and hands out faces at any size.
// It is safe for concurrent use.
type Loader struct {
	path string

	once   sync.Once
	font   *opentype.Font
	source string
}

// NewLoader returns a loader that prefers the font at path. An empty path
// searches [SystemPaths] only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Default is the loader used when a renderer is given none.
var Default = NewLoader("")

func (l *Loader) load() {
	candidates := SystemPaths
	if l.path != "" {
		candidates = append([]string{l.path}, SystemPaths...)
	}
	l.source = Fallback
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		l.font, l.source = f, p
		return
	}
}

// Face returns a new face at size points (72 DPI, so points equal pixels).
// Faces are not safe for concurrent use; request one per render.
func (l *Loader) Face(size float64) font.Face {
	l.once.Do(l.load)
	if l.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Source returns the file the face was loaded from, or [Fallback].
func (l *Loader) Source() string {
	l.once.Do(l.load)
	return l.source
}
