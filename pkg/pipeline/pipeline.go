// Package pipeline renders cabinet designs into output artifacts.
//
// This package is the single render path shared by the CLI, the shell and
// the web designer. It projects a cabinet once with [layout.Project] and
// hands the result to every requested sink, so all outputs agree on
// geometry.
//
// # Formats
//
//   - png: raster front view
//   - svg: vector front view
//   - txt: character-grid front view
//   - pdf: vector front view via rsvg-convert
//   - json: the projected layout ops
//   - dot: Graphviz source of the structure diagram
//   - structure: the structure diagram rendered to SVG by Graphviz
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Render(ctx, cab, pipeline.Options{
//	    Formats: []string{"png", "txt"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := res.Artifacts["png"]
//
// Artifacts are cached under a hash of the saved design, so re-rendering an
// unchanged cabinet is a cache lookup.
package pipeline

import (
	"time"

	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPNG       = "png"
	FormatSVG       = "svg"
	FormatText      = "txt"
	FormatPDF       = "pdf"
	FormatJSON      = "json"
	FormatDOT       = "dot"
	FormatStructure = "structure"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPNG

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:       true,
	FormatSVG:       true,
	FormatText:      true,
	FormatPDF:       true,
	FormatJSON:      true,
	FormatDOT:       true,
	FormatStructure: true,
}

// extensions maps formats to output file suffixes.
var extensions = map[string]string{
	FormatPNG:       ".png",
	FormatSVG:       ".svg",
	FormatText:      ".txt",
	FormatPDF:       ".pdf",
	FormatJSON:      ".json",
	FormatDOT:       ".dot",
	FormatStructure: ".structure.svg",
}

// Extension returns the file suffix for format, including the dot.
func Extension(format string) string {
	return extensions[format]
}

// Options configures a render.
type Options struct {
	// Formats lists the artifacts to produce (default png).
	Formats []string `json:"formats"`

	// Detailed adds shelf and drawer lines to the structure diagram.
	Detailed bool `json:"detailed,omitempty"`

	// Font is a TrueType/OpenType file for raster labels. Empty searches
	// the system font paths.
	Font string `json:"font,omitempty"`

	// NoTitle drops the title row from the text view.
	NoTitle bool `json:"no_title,omitempty"`

	// Refresh bypasses cached artifacts and re-renders.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills in defaults and rejects unknown formats.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatStructure:
		opts.Detailed = o.Detailed
	case FormatPNG:
		opts.Font = o.Font
	case FormatText:
		opts.NoTitle = o.NoTitle
	}
	return opts
}

// ValidateFormat reports whether format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want png, svg, txt, pdf, json, dot or structure)", format)
	}
	return nil
}

// ValidateFormats validates every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of a render.
type Result struct {
	// Artifacts maps format to bytes.
	Artifacts map[string][]byte

	// DesignHash identifies the rendered design.
	DesignHash string

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	// Duration is the wall time of the render.
	Duration time.Duration
}
