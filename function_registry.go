package fileio

import (
	"fmt"
	"sort"
	"sync"
)

// Function is a helper callable from migration expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores expression helpers keyed by name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// DefaultFunctionRegistry returns a registry preloaded with the payload
// helpers setKey, dropKey, renameKey, merge and withDefaults.
func DefaultFunctionRegistry() *FunctionRegistry {
	r := NewFunctionRegistry()
	_ = r.Register("setKey", setKeyFunction)
	_ = r.Register("dropKey", dropKeyFunction)
	_ = r.Register("renameKey", renameKeyFunction)
	_ = r.Register("merge", mergeFunction)
	_ = r.Register("withDefaults", withDefaultsFunction)
	return r
}

// Register stores fn under name guarding against duplicates. Names are case
// sensitive because expression languages are.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("fileio: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("fileio: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("fileio: function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("fileio: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[name]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("fileio: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// setKey(m, key, value) returns a copy of m with key set to value.
func setKeyFunction(args ...any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("setKey expects 3 arguments, got %d", len(args))
	}
	m, err := payloadMap("setKey", args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("setKey key must be a string, got %T", args[1])
	}
	out := copyPayload(m)
	out[key] = args[2]
	return out, nil
}

// dropKey(m, keys...) returns a copy of m without keys.
func dropKeyFunction(args ...any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("dropKey expects a map and at least one key")
	}
	m, err := payloadMap("dropKey", args[0])
	if err != nil {
		return nil, err
	}
	out := copyPayload(m)
	for _, arg := range args[1:] {
		key, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("dropKey keys must be strings, got %T", arg)
		}
		delete(out, key)
	}
	return out, nil
}

// renameKey(m, from, to) moves the value at from to to. Missing keys are
// left alone.
func renameKeyFunction(args ...any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("renameKey expects 3 arguments, got %d", len(args))
	}
	m, err := payloadMap("renameKey", args[0])
	if err != nil {
		return nil, err
	}
	from, okFrom := args[1].(string)
	to, okTo := args[2].(string)
	if !okFrom || !okTo {
		return nil, fmt.Errorf("renameKey keys must be strings")
	}
	out := copyPayload(m)
	if value, ok := out[from]; ok {
		delete(out, from)
		out[to] = value
	}
	return out, nil
}

// merge(a, b, ...) returns a shallow merge where later maps win.
func mergeFunction(args ...any) (any, error) {
	out := map[string]any{}
	for _, arg := range args {
		m, err := payloadMap("merge", arg)
		if err != nil {
			return nil, err
		}
		for key, value := range m {
			out[key] = value
		}
	}
	return out, nil
}

// withDefaults(m, defaults) deep fills keys missing from m.
func withDefaultsFunction(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("withDefaults expects 2 arguments, got %d", len(args))
	}
	for _, arg := range args {
		if _, err := payloadMap("withDefaults", arg); err != nil {
			return nil, err
		}
	}
	return MergePayloads(args[0], args[1]), nil
}

func payloadMap(fn string, value any) (map[string]any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%s expects string keys, got %T", fn, key)
			}
			out[s] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s expects a map, got %T", fn, value)
	}
}

func copyPayload(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for key, value := range m {
		out[key] = value
	}
	return out
}

func emptyCallError() error {
	return fmt.Errorf("call expects a function name as its first argument")
}
