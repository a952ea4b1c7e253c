// SPDX-License-Identifier: MIT

package tutorials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nsl-tools/tutconf/config"
)

func writeLocalConfig(t *testing.T, dir string, entries map[string]any) {
	t.Helper()
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, Filename), data, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// chdir enters dir for the duration of the test and restores the original
// working directory at cleanup. It mirrors testing.T.Chdir, which requires a
// Go 1.24 toolchain; this package must also compile on older ones.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	switch runtime.GOOS {
	case "windows", "plan9":
		// Windows and Plan 9 do not use the PWD variable.
	default:
		if !filepath.IsAbs(dir) {
			dir, err = os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
		}
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := oldwd.Chdir(); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
		if err := oldwd.Close(); err != nil {
			t.Errorf("closing original working directory: %v", err)
		}
	})
}

func TestDefaultsPreferDataSubdirectory(t *testing.T) {
	tmp := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmp, "data"), 0o750); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	chdir(t, tmp)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if got, want := cfg.DataPath(), filepath.Join(cwd, "data"); got != want {
		t.Errorf("DataPath() = %q, want %q", got, want)
	}
}

func TestDefaultsFallBackToWorkingDirectory(t *testing.T) {
	chdir(t, t.TempDir())

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if got := cfg.DataPath(); got != cwd {
		t.Errorf("DataPath() = %q, want working directory %q", got, cwd)
	}
}

func TestLocalFileOverlaysDefaults(t *testing.T) {
	tmp := t.TempDir()
	dataDir := t.TempDir()
	writeLocalConfig(t, tmp, map[string]any{KeyDataPath: dataDir})
	chdir(t, tmp)

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if got := cfg.DataPath(); got != dataDir {
		t.Errorf("DataPath() = %q, want overlaid %q", got, dataDir)
	}
}

func TestOpenFailsOnInvalidLocalFile(t *testing.T) {
	tmp := t.TempDir()
	writeLocalConfig(t, tmp, map[string]any{KeyDataPath: "/definitely/not/a/real/path"})
	chdir(t, tmp)

	_, err := Open()
	if err == nil {
		t.Fatal("expected construction to fail on invalid local file, got nil")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRejectsMissingDirectory(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	before := cfg.DataPath()

	err = cfg.Update(map[string]any{KeyDataPath: "/definitely/not/a/real/path"})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	if got := cfg.DataPath(); got != before {
		t.Errorf("store changed after rejected update: %q -> %q", before, got)
	}
}

func TestRejectsNonStringDataPath(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := cfg.Set(KeyDataPath, 42); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for non-string value, got %v", err)
	}
}

func TestSetDataPath(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	other := t.TempDir()
	if err := cfg.SetDataPath(other); err != nil {
		t.Fatalf("SetDataPath(%q) failed: %v", other, err)
	}
	if got := cfg.DataPath(); got != other {
		t.Errorf("DataPath() = %q, want %q", got, other)
	}
}

func TestSaveLoadKeepsDataPath(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	dataDir := t.TempDir()
	if err := cfg.SetDataPath(dataDir); err != nil {
		t.Fatalf("SetDataPath() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), Filename)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	fresh, err := Open(config.WithPath(path))
	if err != nil {
		t.Fatalf("Open() with saved file failed: %v", err)
	}
	if got := fresh.DataPath(); got != dataDir {
		t.Errorf("DataPath() after reload = %q, want %q", got, dataDir)
	}
}

func TestGlobalReturnsSameInstance(t *testing.T) {
	a, err := Global()
	if err != nil {
		t.Fatalf("Global() failed: %v", err)
	}
	b, err := Global()
	if err != nil {
		t.Fatalf("second Global() failed: %v", err)
	}
	if a != b {
		t.Fatal("expected Global() to return the same instance")
	}

	dir := t.TempDir()
	if err := a.SetDataPath(dir); err != nil {
		t.Fatalf("SetDataPath() failed: %v", err)
	}
	if got := b.DataPath(); got != dir {
		t.Errorf("mutation through one reference not visible through the other: %q", got)
	}
}
