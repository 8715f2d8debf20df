package fileio

import "fmt"

// Envelope keys. These names are the persisted contract shared with other
// implementations.
const (
	EnvelopeVersionKey = "version"
	EnvelopeTypeKey    = "type"
	EnvelopeDataKey    = "data"
)

// Envelope is the persisted unit: a payload tagged with the version that
// wrote it and its file type.
type Envelope struct {
	Version Version
	Type    string
	Data    any
}

// envelopeDocument fixes field order and tags for every codec.
type envelopeDocument struct {
	Version [3]int `json:"version" yaml:"version,flow" toml:"version"`
	Type    string `json:"type" yaml:"type" toml:"type"`
	Data    any    `json:"data" yaml:"data" toml:"data"`
}

func (e Envelope) document() envelopeDocument {
	return envelopeDocument{
		Version: e.Version.Triple(),
		Type:    e.Type,
		Data:    e.Data,
	}
}

// EnvelopeFromMap validates a decoded document and extracts the envelope.
func EnvelopeFromMap(doc map[string]any) (Envelope, error) {
	if doc == nil {
		return Envelope{}, fmt.Errorf("%w: empty document", ErrMalformedEnvelope)
	}
	for _, key := range []string{EnvelopeVersionKey, EnvelopeTypeKey, EnvelopeDataKey} {
		if _, ok := doc[key]; !ok {
			return Envelope{}, fmt.Errorf("%w: missing %q", ErrMalformedEnvelope, key)
		}
	}
	version, err := VersionFromAny(doc[EnvelopeVersionKey])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	fileType, ok := doc[EnvelopeTypeKey].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %q must be a string, got %T", ErrMalformedEnvelope, EnvelopeTypeKey, doc[EnvelopeTypeKey])
	}
	return Envelope{
		Version: version,
		Type:    fileType,
		Data:    doc[EnvelopeDataKey],
	}, nil
}
