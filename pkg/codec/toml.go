package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNullValue is returned when a value holds nil and the encoding has no way
// to represent it.
var ErrNullValue = errors.New("codec: null value not representable")

type tomlCodec struct{}

// TOML returns the TOML codec. TOML has no null, so Marshal rejects values
// holding nil anywhere with ErrNullValue instead of dropping them.
func TOML() Codec {
	return tomlCodec{}
}

func (tomlCodec) Name() string { return "toml" }

func (tomlCodec) Extensions() []string { return []string{".toml"} }

func (tomlCodec) Marshal(v any) ([]byte, error) {
	if err := checkNulls(reflect.ValueOf(v), "$"); err != nil {
		return nil, fmt.Errorf("codec: marshal toml: %w", err)
	}
	out, err := toml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal toml: %w", err)
	}
	return out, nil
}

func (tomlCodec) Unmarshal(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("codec: parse toml: %w", err)
	}
	return doc, nil
}

func checkNulls(v reflect.Value, path string) error {
	if !v.IsValid() {
		return fmt.Errorf("%w at %s", ErrNullValue, path)
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return fmt.Errorf("%w at %s", ErrNullValue, path)
		}
		return checkNulls(v.Elem(), path)
	case reflect.Map:
		if v.IsNil() {
			return fmt.Errorf("%w at %s", ErrNullValue, path)
		}
		iter := v.MapRange()
		for iter.Next() {
			if err := checkNulls(iter.Value(), fmt.Sprintf("%s.%v", path, iter.Key())); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkNulls(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, opts, _ := strings.Cut(field.Tag.Get("toml"), ",")
			if name == "-" || (strings.Contains(opts, "omitempty") && v.Field(i).IsZero()) {
				continue
			}
			if name == "" {
				name = field.Name
			}
			if err := checkNulls(v.Field(i), path+"."+name); err != nil {
				return err
			}
		}
	}
	return nil
}
