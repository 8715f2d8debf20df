package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

// YAML returns the YAML codec. It is the default envelope encoding.
func YAML() Codec {
	return yamlCodec{}
}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Extensions() []string { return []string{".yaml", ".yml"} }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal yaml: %w", err)
	}
	return out, nil
}

func (yamlCodec) Unmarshal(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("codec: parse yaml: %w", err)
	}
	return doc, nil
}
