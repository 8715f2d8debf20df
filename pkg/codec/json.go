package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type jsonCodec struct {
	indent string
}

// JSON returns a codec writing indented JSON.
func JSON() Codec {
	return jsonCodec{indent: "  "}
}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Extensions() []string { return []string{".json"} }

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	var out []byte
	var err error
	if c.indent == "" {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", c.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: marshal json: %w", err)
	}
	return append(out, '\n'), nil
}

func (jsonCodec) Unmarshal(raw []byte) (map[string]any, error) {
	var doc map[string]any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("codec: parse json: %w", err)
	}
	for key, value := range doc {
		doc[key] = normalizeNumbers(value)
	}
	return doc, nil
}

// normalizeNumbers turns json.Number values into int when integral and
// float64 otherwise, matching what the YAML codec yields.
func normalizeNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if i, err := typed.Int64(); err == nil && int64(int(i)) == i {
			return int(i)
		}
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalizeNumbers(item)
		}
		return typed
	case []any:
		for i, item := range typed {
			typed[i] = normalizeNumbers(item)
		}
		return typed
	default:
		return value
	}
}
