package pipeline

import (
	"fmt"
	"sync"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/fonts"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
	"github.com/matzehuels/cabinetry/pkg/render/sink"
	"github.com/matzehuels/cabinetry/pkg/render/structure"
)

var (
	loadersMu sync.Mutex
	loaders   = map[string]*fonts.Loader{"": fonts.Default}
)

// fontLoader returns a shared loader per font path so each file is parsed once.
func fontLoader(path string) *fonts.Loader {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	l, ok := loaders[path]
	if !ok {
		l = fonts.NewLoader(path)
		loaders[path] = l
	}
	return l
}

// Render produces the requested artifacts without touching any cache.
// The front view is projected at most once.
func Render(c *cabinet.Cabinet, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var (
		l         layout.Layout
		projected bool
	)
	front := func() layout.Layout {
		if !projected {
			l, projected = layout.Project(c), true
		}
		return l
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := renderFormat(c, front, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(c *cabinet.Cabinet, front func() layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return sink.RenderPNG(front(), sink.WithFonts(fontLoader(opts.Font)))
	case FormatSVG:
		return sink.RenderSVG(front()), nil
	case FormatText:
		var textOpts []sink.TextOption
		if opts.NoTitle {
			textOpts = append(textOpts, sink.WithoutTitle())
		}
		return []byte(sink.RenderText(front(), textOpts...)), nil
	case FormatPDF:
		return sink.RenderPDF(front())
	case FormatJSON:
		return sink.RenderJSON(front())
	case FormatDOT:
		return []byte(structure.ToDOT(c, structure.Options{Detailed: opts.Detailed})), nil
	case FormatStructure:
		return structure.RenderSVG(structure.ToDOT(c, structure.Options{Detailed: opts.Detailed}))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}
