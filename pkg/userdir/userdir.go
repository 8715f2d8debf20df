// Package userdir locates per-user application data directories.
//
// Windows uses %LOCALAPPDATA% (falling back to %APPDATA%), macOS uses
// ~/Library/Application Support and everything else follows the XDG base
// directory layout with $XDG_DATA_HOME defaulting to ~/.local/share.
package userdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// ErrAppNameRequired is returned when DataDir is called with an empty name.
var ErrAppNameRequired = errors.New("userdir: app name is required")

// Resolver resolves and creates per-user data directories. When Base is set
// it replaces the platform default, which is mostly useful in tests.
type Resolver struct {
	Base string
	// Perm is used when creating directories. Defaults to 0o755.
	Perm os.FileMode
	// Fs is where the directory is created. Defaults to the OS filesystem.
	Fs afero.Fs
}

// DataDir returns the data directory for appName, creating it if absent.
func (r Resolver) DataDir(appName string) (string, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return "", ErrAppNameRequired
	}
	base := r.Base
	if base == "" {
		var err error
		base, err = BaseDir()
		if err != nil {
			return "", err
		}
	}
	dir := filepath.Join(base, name)
	perm := r.Perm
	if perm == 0 {
		perm = 0o755
	}
	fs := r.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, perm); err != nil {
		return "", fmt.Errorf("userdir: create %s: %w", dir, err)
	}
	return dir, nil
}

// DataDir resolves appName against the platform default base directory.
func DataDir(appName string) (string, error) {
	return Resolver{}.DataDir(appName)
}

// BaseDir returns the platform specific root for per-user application data.
func BaseDir() (string, error) {
	return baseDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func baseDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("userdir: home directory: %w", err)
		}
		return filepath.Join(h, "AppData", "Local"), nil
	case "darwin":
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("userdir: home directory: %w", err)
		}
		return filepath.Join(h, "Library", "Application Support"), nil
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("userdir: home directory: %w", err)
		}
		return filepath.Join(h, ".local", "share"), nil
	}
}

// Fixed is a resolver that always returns the same directory, ignoring the
// app name. The directory is not created.
type Fixed string

// DataDir implements the resolver contract.
func (f Fixed) DataDir(string) (string, error) {
	if f == "" {
		return "", errors.New("userdir: fixed directory is empty")
	}
	return string(f), nil
}
