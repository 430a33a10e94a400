package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/render"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}) }

func twoColumns(t *testing.T) *cabinet.Cabinet {
	t.Helper()
	c := cabinet.New()
	for _, w := range []int{60, 80} {
		if err := c.AddColumn(w); err != nil {
			t.Fatalf("AddColumn(%d): %v", w, err)
		}
	}
	return c
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"txt", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"structure", false},
		{"invalid", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}

	bad := Options{Formats: []string{"svg", "gif"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestExtension(t *testing.T) {
	for format := range ValidFormats {
		if ext := Extension(format); !strings.HasPrefix(ext, ".") {
			t.Errorf("Extension(%q) = %q, want a dotted suffix", format, ext)
		}
	}
	if Extension("gif") != "" {
		t.Error("unknown format should have no extension")
	}
}

func TestRender(t *testing.T) {
	c := twoColumns(t)
	artifacts, err := Render(c, Options{Formats: []string{"svg", "txt", "json", "dot", "svg"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 4 {
		t.Errorf("len(artifacts) = %d, want 4", len(artifacts))
	}
	if !bytes.HasPrefix(artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg starts with %q", artifacts["svg"][:20])
	}
	if !strings.HasPrefix(string(artifacts["txt"]), "Total Width: 140cm | Total Height: 240.0cm\n") {
		t.Errorf("txt title = %q", strings.SplitN(string(artifacts["txt"]), "\n", 2)[0])
	}
	if !bytes.Contains(artifacts["json"], []byte(`"canvas_width": 900`)) {
		t.Errorf("json missing canvas width: %s", artifacts["json"][:80])
	}
	if !bytes.HasPrefix(artifacts["dot"], []byte("digraph cabinet {")) {
		t.Errorf("dot = %q", artifacts["dot"][:20])
	}
}

func TestRenderNoTitle(t *testing.T) {
	c := twoColumns(t)
	artifacts, err := Render(c, Options{Formats: []string{FormatText}, NoTitle: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(artifacts[FormatText]), "Total Width") {
		t.Error("title row should be dropped")
	}
}

func TestRenderPNG(t *testing.T) {
	artifacts, err := Render(twoColumns(t), Options{Formats: []string{FormatPNG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	artifacts, err := Render(twoColumns(t), Options{Formats: []string{FormatPDF}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
}

func TestRunnerCaches(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	c := twoColumns(t)
	opts := Options{Formats: []string{"svg", "txt"}}

	first, err := r.Render(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first.CacheHit {
		t.Error("first render should miss")
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}

	second, err := r.Render(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !second.CacheHit {
		t.Error("second render should hit")
	}
	if second.DesignHash != first.DesignHash {
		t.Errorf("DesignHash changed: %s vs %s", second.DesignHash, first.DesignHash)
	}
	if !bytes.Equal(second.Artifacts["txt"], first.Artifacts["txt"]) {
		t.Error("cached txt differs from rendered txt")
	}

	if err := c.ToggleTop(0); err != nil {
		t.Fatal(err)
	}
	third, err := r.Render(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if third.CacheHit || third.DesignHash == first.DesignHash {
		t.Error("an edited design should miss the cache")
	}

	refreshed, err := r.Render(context.Background(), c, Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerPartialHit(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	c := twoColumns(t)

	if _, err := r.Render(context.Background(), c, Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Render(context.Background(), c, Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("json was never cached; render should miss")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("len(artifacts) = %d, want 2", len(res.Artifacts))
	}
}

func TestRunnerFileCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "test"), quietLogger())
	defer r.Close()

	c := twoColumns(t)
	opts := Options{Formats: []string{"dot"}}
	if _, err := r.Render(context.Background(), c, opts); err != nil {
		t.Fatal(err)
	}
	res, err := r.Render(context.Background(), c, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit {
		t.Error("file cache should serve the second render")
	}
}

func TestRunnerInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Render(context.Background(), cabinet.New(), Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true, Font: "/f.ttf", NoTitle: true}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Detailed || k.Font != "" || k.NoTitle {
		t.Errorf("svg key opts = %+v, want only the format", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed {
		t.Error("dot key should carry Detailed")
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Font != "/f.ttf" {
		t.Error("png key should carry Font")
	}
	if k := opts.ArtifactKeyOpts(FormatText); !k.NoTitle {
		t.Error("txt key should carry NoTitle")
	}
}
