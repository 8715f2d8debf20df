package userdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestResolverCreatesDirectory(t *testing.T) {
	base := t.TempDir()
	dir, err := Resolver{Base: base}.DataDir("motor")
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != filepath.Join(base, "motor") {
		t.Fatalf("unexpected dir %q", dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}

	again, err := Resolver{Base: base}.DataDir("motor")
	if err != nil || again != dir {
		t.Fatalf("expected idempotent resolve, got %q %v", again, err)
	}
}

func TestResolverRequiresName(t *testing.T) {
	if _, err := (Resolver{Base: t.TempDir()}).DataDir("  "); !errors.Is(err, ErrAppNameRequired) {
		t.Fatalf("expected ErrAppNameRequired, got %v", err)
	}
}

func TestDataDirHonoursXDG(t *testing.T) {
	if _, err := BaseDir(); err != nil {
		t.Skipf("no base dir on this platform: %v", err)
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	t.Setenv("LOCALAPPDATA", base)
	t.Setenv("HOME", base)
	dir, err := DataDir("motor")
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if filepath.Base(dir) != "motor" {
		t.Fatalf("expected app dir, got %q", dir)
	}
}

func TestBaseDirPerPlatform(t *testing.T) {
	env := map[string]string{}
	getenv := func(key string) string { return env[key] }
	home := func() (string, error) { return "/home/u", nil }
	noHome := func() (string, error) { return "", errors.New("no home") }

	cases := []struct {
		name string
		goos string
		env  map[string]string
		home func() (string, error)
		want string
		err  bool
	}{
		{name: "linux default", goos: "linux", home: home, want: filepath.Join("/home/u", ".local", "share")},
		{name: "linux xdg", goos: "linux", env: map[string]string{"XDG_DATA_HOME": "/data"}, home: home, want: "/data"},
		{name: "darwin", goos: "darwin", home: home, want: filepath.Join("/home/u", "Library", "Application Support")},
		{name: "windows local", goos: "windows", env: map[string]string{"LOCALAPPDATA": `C:\L`, "APPDATA": `C:\R`}, home: home, want: `C:\L`},
		{name: "windows roaming", goos: "windows", env: map[string]string{"APPDATA": `C:\R`}, home: home, want: `C:\R`},
		{name: "no home", goos: "linux", home: noHome, err: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env = tc.env
			got, err := baseDir(tc.goos, getenv, tc.home)
			if tc.err {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("base dir: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestResolverUsesProvidedFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir, err := Resolver{Base: "/virtual", Fs: fs}.DataDir("motor")
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	ok, err := afero.DirExists(fs, dir)
	if err != nil || !ok {
		t.Fatalf("expected %s in memory fs: %v", dir, err)
	}
	if _, err := os.Stat(dir); err == nil {
		t.Fatalf("expected nothing created on disk at %s", dir)
	}
}

func TestFixed(t *testing.T) {
	dir, err := Fixed("/srv/data").DataDir("ignored")
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if dir != "/srv/data" {
		t.Fatalf("expected /srv/data, got %s", dir)
	}
	if _, err := Fixed("").DataDir("app"); err == nil {
		t.Fatalf("expected error for empty fixed dir")
	}
}
