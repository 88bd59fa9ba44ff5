package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"beaconpair/internal/platform/config/raw"

	"github.com/BurntSushi/toml"
)

// File is a flattened TOML config file
type File struct {
	Path   string
	values map[string]string
}

// LoadFile reads a TOML file. Tables and keys flatten to upper case names joined by "_", so
//
//	[pairing]
//	ready_timeout = "5s"
//
// is read as PAIRING_READY_TIMEOUT. Arrays become comma separated values
func LoadFile(path string) (*File, error) {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	f := &File{Path: path, values: map[string]string{}}
	if err := flatten("", doc, f.values); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return f, nil
}

// Keys lists the flattened names, sorted
func (f *File) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source serves the file's values
func (f *File) Source() raw.Source {
	if f == nil {
		return nil
	}
	return raw.Map(f.values)
}

// WithFile returns a root view where environment values win over f's; a nil f is the plain environment
func WithFile(f *File) Conf { return From(raw.Layered(raw.Env, f.Source())) }

func flatten(prefix string, in map[string]any, out map[string]string) error {
	for k, v := range in {
		name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(k), "-", "_"))
		if prefix != "" {
			name = prefix + "_" + name
		}
		if sub, ok := v.(map[string]any); ok {
			if err := flatten(name, sub, out); err != nil {
				return err
			}
			continue
		}
		s, err := scalar(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out[name] = s
	}
	return nil
}

// scalar renders a leaf the way the readers parse it back
func scalar(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, err := scalar(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
