// Package manifest declares file types and expression migrations in YAML so
// migration chains can ship as data:
//
//	types:
//	  - name: config
//	    migrations:
//	      - from: 1.0.0
//	        to: 2.0.0
//	        engine: expr
//	        expression: setKey(data, "x", 1)
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	fileio "github.com/goliatone/go-fileio"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultEngine is used by migrations that do not name an engine.
const DefaultEngine = "expr"

// ErrUnknownEngine is returned by Apply for migrations naming an engine that
// is not in the Engines set.
var ErrUnknownEngine = errors.New("manifest: unknown expression engine")

// Manifest lists file types and their migrations.
type Manifest struct {
	Types []FileType `yaml:"types"`
}

// FileType is one catalog entry.
type FileType struct {
	Name       string      `yaml:"name"`
	Migrations []Migration `yaml:"migrations"`
}

// Migration is one expression edge.
type Migration struct {
	From       VersionValue `yaml:"from"`
	To         VersionValue `yaml:"to"`
	Engine     string       `yaml:"engine"`
	Expression string       `yaml:"expression"`
}

// VersionValue accepts "1.2.3" scalars as well as [1, 2, 3] sequences.
type VersionValue struct {
	fileio.Version
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *VersionValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := fileio.ParseVersion(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		v.Version = parsed
		return nil
	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: %w: %v", node.Line, fileio.ErrInvalidVersion, err)
		}
		parsed, err := fileio.VersionFromAny(parts)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		v.Version = parsed
		return nil
	default:
		return fmt.Errorf("line %d: %w: expected string or list", node.Line, fileio.ErrInvalidVersion)
	}
}

// MarshalYAML writes the version as a string.
func (v VersionValue) MarshalYAML() (any, error) {
	return v.Version.String(), nil
}

// Engines maps engine names used in manifests to evaluators.
type Engines map[string]fileio.Evaluator

// DefaultEngines returns the expr and cel engines, plus js when the binary
// was built with js_eval. cache may be nil.
func DefaultEngines(cache fileio.ProgramCache) Engines {
	engines := Engines{
		"expr": fileio.NewExprEvaluator(fileio.ExprWithProgramCache(cache)),
		"cel":  fileio.NewCELEvaluator(fileio.CELWithProgramCache(cache)),
	}
	if fileio.JSEvaluatorAvailable() {
		engines["js"] = fileio.NewJSEvaluator(fileio.JSWithProgramCache(cache))
	}
	return engines
}

// Names returns the engine names sorted.
func (e Engines) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a manifest document. Unknown keys are rejected.
func Parse(raw []byte) (*Manifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	m := &Manifest{}
	if err := decoder.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads and parses the manifest at path. A nil fs uses the OS
// filesystem.
func LoadFile(fs afero.Fs, path string) (*Manifest, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks names are present and unique and every migration has an
// expression.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Types))
	for i, ft := range m.Types {
		name := strings.TrimSpace(ft.Name)
		if name == "" {
			return fmt.Errorf("manifest: types[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("manifest: types[%d]: %w: %q", i, fileio.ErrDuplicateFileType, name)
		}
		seen[name] = struct{}{}
		for j, mig := range ft.Migrations {
			if strings.TrimSpace(mig.Expression) == "" {
				return fmt.Errorf("manifest: %s migrations[%d]: expression is required", name, j)
			}
		}
	}
	return nil
}

// Apply registers every file type missing from registry and compiles every
// migration with its engine.
func (m *Manifest) Apply(registry *fileio.Registry, engines Engines) error {
	for _, ft := range m.Types {
		name := strings.TrimSpace(ft.Name)
		if !registry.HasFileType(name) {
			if err := registry.RegisterFileType(name); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}
		}
		for j, mig := range ft.Migrations {
			engine := strings.TrimSpace(mig.Engine)
			if engine == "" {
				engine = DefaultEngine
			}
			evaluator, ok := engines[engine]
			if !ok {
				return fmt.Errorf("manifest: %s migrations[%d]: %w %q (available: %s)",
					name, j, ErrUnknownEngine, engine, strings.Join(engines.Names(), ", "))
			}
			if err := registry.RegisterExpression(name, mig.From.Version, mig.To.Version, evaluator, mig.Expression); err != nil {
				return fmt.Errorf("manifest: %s migrations[%d]: %w", name, j, err)
			}
		}
	}
	return nil
}
