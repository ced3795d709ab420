package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/observability"
)

func writePkg(t *testing.T, dir, rel, content string) {
	t.Helper()
	pkgDir := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, manifest.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePkg(t, dir, ".", `{
  "name": "app",
  "version": "1.0.0",
  "scripts": {"test": "tape"},
  "dependencies": {"stale": "^1.0.0"},
  "linkdeps": {
    "own": {"dependencies": {"mkdirp": "^0.5.0"}},
    "local": {"dependencies": {"lib": "*"}}
  }
}`)
	writePkg(t, dir, "lib", `{"name": "lib", "version": "2.0.0", "dependencies": {"mkdirp": "^0.5.1"}}`)
	return dir
}

func newTestRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func readManifest(t *testing.T, dir string) *manifest.PackageDescriptor {
	t.Helper()
	d, err := manifest.Read(dir)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Mode != DefaultMode || opts.SrcPath != DefaultSrcPath {
		t.Errorf("defaults = (%q, %q), want (%q, %q)", opts.Mode, opts.SrcPath, DefaultMode, DefaultSrcPath)
	}

	bad := Options{Mode: "fast"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("invalid mode error = %v, want INVALID_MODE", err)
	}
}

func TestRunCheck(t *testing.T) {
	dir := fixture(t)
	before, _ := os.ReadFile(filepath.Join(dir, manifest.FileName))

	res, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir, Mode: linkdeps.ModeDevel, Check: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Saved || res.Link != nil {
		t.Errorf("check run saved=%v link=%v, want neither", res.Saved, res.Link)
	}
	if got := res.Sections.Dependencies["mkdirp"]; got != "^0.5.1" {
		t.Errorf("mkdirp = %q, want ^0.5.1", got)
	}

	after, _ := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if string(before) != string(after) {
		t.Error("check run modified the manifest")
	}
	if _, err := os.Lstat(filepath.Join(dir, "node_modules")); !os.IsNotExist(err) {
		t.Error("check run created node_modules")
	}

	diff := res.Context.FormatDiff(false)
	for _, want := range []string{"+ mkdirp: ^0.5.1", "- stale: ^1.0.0"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestRunDevel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	dir := fixture(t)

	res, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Saved {
		t.Error("devel run did not save")
	}
	if res.Stats.NodeCount != 2 || res.Stats.DepCount != 1 {
		t.Errorf("stats = %+v, want 2 nodes and 1 dep", res.Stats)
	}

	got := readManifest(t, dir)
	if spec := got.Sections().Dependencies["mkdirp"]; spec != "^0.5.1" {
		t.Errorf("saved mkdirp = %q, want ^0.5.1", spec)
	}
	if _, ok := got.Sections().Dependencies["stale"]; ok {
		t.Error("stale dependency survived the update")
	}
	if !strings.Contains(string(got.Raw), `"scripts"`) {
		t.Error("unrelated fields were dropped")
	}

	if _, err := os.Readlink(filepath.Join(dir, "node_modules", "lib")); err != nil {
		t.Errorf("lib not linked: %v", err)
	}
}

func TestRunDeployToOutDir(t *testing.T) {
	dir := fixture(t)
	out := filepath.Join(t.TempDir(), "dist")

	res, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir, OutPath: out, Mode: linkdeps.ModeDeploy})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Link != nil {
		t.Error("deploy run linked locals")
	}
	if res.ManifestPath != filepath.Join(out, manifest.FileName) {
		t.Errorf("ManifestPath = %q", res.ManifestPath)
	}

	got := readManifest(t, out)
	spec := got.Sections().Dependencies["lib"]
	if !strings.HasPrefix(spec, "file:") || !strings.HasSuffix(spec, "/lib") {
		t.Errorf("lib = %q, want a file: path to lib", spec)
	}
	if got.Name != "app" {
		t.Errorf("output manifest name = %q, want app", got.Name)
	}
}

func TestRunLinkOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	dir := fixture(t)
	before, _ := os.ReadFile(filepath.Join(dir, manifest.FileName))

	res, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir, Mode: linkdeps.ModeLink})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Saved || len(res.Diff) != 0 {
		t.Errorf("link run saved=%v diff=%v, want neither", res.Saved, res.Diff)
	}
	if res.Link == nil || len(res.Link.Created) != 1 {
		t.Errorf("link result = %+v, want one created link", res.Link)
	}
	after, _ := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if string(before) != string(after) {
		t.Error("link run modified the manifest")
	}
}

func TestRunPublishRejectsPrivate(t *testing.T) {
	dir := t.TempDir()
	writePkg(t, dir, ".", `{"name": "app", "linkdeps": {"local": {"dependencies": {"p": "*"}}}}`)
	writePkg(t, dir, "p", `{"name": "p", "version": "1.0.0", "private": true}`)

	_, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir, Mode: linkdeps.ModePublish})
	if !errors.Is(err, errors.ErrCodePrivatePackage) {
		t.Errorf("Run error = %v, want PRIVATE_PACKAGE", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildStart(context.Context, string) { h.record("build") }
func (h *recordingHooks) OnUpdateComplete(_ context.Context, mode string, _ int, _ time.Duration, _ error) {
	h.record("update:" + mode)
}
func (h *recordingHooks) OnSave(context.Context, string, error) { h.record("save") }

func TestRunEmitsHooks(t *testing.T) {
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)

	dir := fixture(t)
	if _, err := newTestRunner().Run(context.Background(), Options{SrcPath: dir, Mode: linkdeps.ModeDeployMix}); err != nil {
		t.Fatal(err)
	}

	want := []string{"build", "update:deploy-mix", "save"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
