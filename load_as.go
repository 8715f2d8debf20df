package fileio

import (
	"context"

	"github.com/goliatone/go-fileio/internal/hydrate"
)

// HydrateContext identifies the payload handed to LoadAs hooks.
type HydrateContext = hydrate.Context

// LoadOption configures how LoadAs and LoadFileAs decode the payload into T.
type LoadOption[T any] func(*loadOptions[T])

type loadOptions[T any] struct {
	decoder []hydrate.DecoderOption[T]
}

// LoadWithPreHook rewrites the migrated payload before it is decoded.
func LoadWithPreHook[T any](hook func(HydrateContext, any) (any, error)) LoadOption[T] {
	return func(o *loadOptions[T]) {
		o.decoder = append(o.decoder, hydrate.WithPreHook[T](hook))
	}
}

// LoadWithPostHook adjusts or validates the decoded value.
func LoadWithPostHook[T any](hook func(HydrateContext, *T) error) LoadOption[T] {
	return func(o *loadOptions[T]) {
		o.decoder = append(o.decoder, hydrate.WithPostHook[T](hook))
	}
}

// LoadWithUseNumber keeps numbers as json.Number when T holds untyped values.
func LoadWithUseNumber[T any]() LoadOption[T] {
	return func(o *loadOptions[T]) {
		o.decoder = append(o.decoder, hydrate.WithUseNumber[T]())
	}
}

// LoadWithDisallowUnknownFields fails when the payload has keys T does not
// declare.
func LoadWithDisallowUnknownFields[T any]() LoadOption[T] {
	return func(o *loadOptions[T]) {
		o.decoder = append(o.decoder, hydrate.WithDisallowUnknownFields[T]())
	}
}

// LoadAs loads an envelope like Store.Load and decodes the resulting payload
// into T. Migrations keep working on the generic decoded form; only the
// final payload is typed.
func LoadAs[T any](s *Store, fileType string, raw []byte, opts ...LoadOption[T]) (T, error) {
	data, err := s.Load(fileType, raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return hydrateAs(s, fileType, data, opts)
}

// LoadFileAs is the file based variant of LoadAs.
func LoadFileAs[T any](ctx context.Context, s *Store, fileType, path string, opts ...LoadOption[T]) (T, error) {
	data, err := s.LoadFile(ctx, fileType, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return hydrateAs(s, fileType, data, opts)
}

func hydrateAs[T any](s *Store, fileType string, data any, opts []LoadOption[T]) (T, error) {
	hctx := hydrate.Context{FileType: fileType}
	if version, err := s.AppVersion(); err == nil {
		hctx.Version = version.String()
	}
	var cfg loadOptions[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return hydrate.NewDecoder(cfg.decoder...).Decode(hctx, data)
}
