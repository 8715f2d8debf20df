// Package codec provides the text encodings used to persist fileio envelopes.
//
// A Codec marshals any Go value and unmarshals a document into a string keyed
// map, leaving shape checks of the decoded envelope to the caller.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownCodec is returned by ByName and ForPath for unsupported encodings.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes and decodes envelope documents.
type Codec interface {
	// Name returns the canonical codec name ("yaml", "json", "toml").
	Name() string
	// Extensions lists file extensions handled by the codec, with leading dot.
	Extensions() []string
	Marshal(v any) ([]byte, error)
	Unmarshal(raw []byte) (map[string]any, error)
}

var builtin = map[string]Codec{
	"yaml": YAML(),
	"yml":  YAML(),
	"json": JSON(),
	"toml": TOML(),
}

// ByName returns the builtin codec registered under name.
func ByName(name string) (Codec, error) {
	c, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// ForPath picks a codec from the file extension of path.
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, name := range Names() {
		c := builtin[name]
		for _, candidate := range c.Extensions() {
			if candidate == ext {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no codec for extension %q", ErrUnknownCodec, ext)
}

// Names returns the canonical builtin codec names sorted alphabetically.
func Names() []string {
	seen := map[string]struct{}{}
	names := make([]string, 0, len(builtin))
	for _, c := range builtin {
		if _, ok := seen[c.Name()]; ok {
			continue
		}
		seen[c.Name()] = struct{}{}
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}
