package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	fileio "github.com/goliatone/go-fileio"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Codec != DefaultCodec {
		t.Fatalf("expected default codec %q, got %q", DefaultCodec, cfg.Codec)
	}
	if _, err := cfg.Version(); !errors.Is(err, fileio.ErrAppVersionNotSet) {
		t.Fatalf("expected ErrAppVersionNotSet, got %v", err)
	}
}

func TestLoadFileFormats(t *testing.T) {
	cases := map[string]string{
		"fileio.yaml": "app_name: demo\napp_version: 2.1.0\ncodec: json\nmanifest: m.yaml\n",
		"fileio.toml": "app_name = \"demo\"\napp_version = \"2.1.0\"\ncodec = \"json\"\nmanifest = \"m.yaml\"\n",
		"fileio.json": `{"app_name":"demo","app_version":"2.1.0","codec":"json","manifest":"m.yaml"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, name, body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AppName != "demo" || cfg.Codec != "json" || cfg.Manifest != "m.yaml" {
				t.Fatalf("unexpected config: %+v", cfg)
			}
			version, err := cfg.Version()
			if err != nil {
				t.Fatalf("Version: %v", err)
			}
			if version != fileio.V(2, 1, 0) {
				t.Fatalf("expected 2.1.0, got %s", version)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "fileio.yaml", "app_name: demo\napp_version: 1.0.0\n")
	t.Setenv("FILEIO_APP_VERSION", "3.0.0")
	t.Setenv("FILEIO_CODEC", "toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppVersion != "3.0.0" {
		t.Fatalf("expected env app version, got %q", cfg.AppVersion)
	}
	enc, err := cfg.ResolveCodec()
	if err != nil {
		t.Fatalf("ResolveCodec: %v", err)
	}
	if enc.Name() != "toml" {
		t.Fatalf("expected toml codec, got %s", enc.Name())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestStoreOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{AppName: "demo", AppVersion: "1.2.3", Codec: "json", DataDir: dir}
	opts, err := cfg.StoreOptions()
	if err != nil {
		t.Fatalf("StoreOptions: %v", err)
	}
	store := fileio.NewStore(nil, opts...)
	if store.Codec().Name() != "json" {
		t.Fatalf("expected json codec, got %s", store.Codec().Name())
	}
	version, err := store.AppVersion()
	if err != nil || version != fileio.V(1, 2, 3) {
		t.Fatalf("expected 1.2.3, got %s (%v)", version, err)
	}
	path, err := store.UserFilePath("settings.json")
	if err != nil {
		t.Fatalf("UserFilePath: %v", err)
	}
	if want := filepath.Join(dir, "demo", "settings.json"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}

	bad := &Config{Codec: "xml"}
	if _, err := bad.StoreOptions(); err == nil {
		t.Fatalf("expected unknown codec error")
	}
	invalid := &Config{AppVersion: "one"}
	if _, err := invalid.StoreOptions(); !errors.Is(err, fileio.ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}
