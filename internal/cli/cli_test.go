package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/errors"
	cabio "github.com/matzehuels/cabinetry/pkg/io"
)

// runRoot executes the root command against a throwaway config whose
// design store and cache live in a temp dir.
func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := fmt.Sprintf("[designs]\ndir = %q\n\n[cache]\nbackend = \"file\"\ndir = %q\n",
			filepath.Join(dir, "designs"), filepath.Join(dir, "cache"))
		if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	want := []string{"render", "show", "shell", "move", "serve", "designs", "cache", "config", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runRoot(t, t.TempDir(), "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "cabinetry") {
		t.Errorf("version output = %q", out)
	}
}

func TestDesignsLifecycle(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kitchen.json")
	if err := cabio.ExportJSON(starterCabinet(), src); err != nil {
		t.Fatal(err)
	}

	if out, err := runRoot(t, dir, "designs", "import", src, "kitchen"); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}

	out, err := runRoot(t, dir, "designs", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "kitchen") {
		t.Errorf("list output missing design:\n%s", out)
	}

	out, err = runRoot(t, dir, "show", "--plain", "kitchen")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "140 cm") {
		t.Errorf("show output missing width:\n%s", out)
	}

	dst := filepath.Join(dir, "out.json")
	if _, err := runRoot(t, dir, "designs", "export", "kitchen", dst); err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := cabio.ImportJSON(dst)
	if err != nil || back.TotalWidth() != 140 {
		t.Fatalf("exported design: %v, %v", back, err)
	}

	if _, err := runRoot(t, dir, "designs", "rm", "kitchen"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := runRoot(t, dir, "designs", "rm", "kitchen"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second rm error = %v, want NOT_FOUND", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, dir, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, "cache") {
		t.Errorf("cache path = %q", out)
	}

	if out, err := runRoot(t, dir, "cache", "clear"); err != nil || !strings.Contains(out, "Cleared") {
		t.Errorf("cache clear: %v\n%s", err, out)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[designs]", filepath.Join(dir, "designs"), `addr = ":8080"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, err = runRoot(t, dir, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "config.toml")) {
		t.Errorf("config path = %q", out)
	}
}

func TestBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[cache]\nbakend = \"redis\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runRoot(t, dir, "config", "show")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
