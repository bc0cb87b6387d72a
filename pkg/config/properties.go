package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Properties is a flat name = value configuration source, the format QC
// property files use. Names are kept in file order.
type Properties struct {
	values map[string]string
	names  []string
}

// PropertySource supplies raw parameter values by name. Sources that also
// implement Names() have their parameter lists arity-checked by Resolve.
type PropertySource interface {
	Get(name string) (string, bool)
}

// LoadProperties reads a property file from disk.
func LoadProperties(path string) (*Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParseProperties(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseProperties reads name = value lines. Blank lines and lines starting
// with '#' or ';' are ignored.
func ParseProperties(r io.Reader) (*Properties, error) {
	p := &Properties{values: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected name = value, got %q", lineNo, line)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty property name", lineNo)
		}
		if _, dup := p.values[name]; dup {
			return nil, fmt.Errorf("line %d: duplicate property %q", lineNo, name)
		}

		p.values[name] = value
		p.names = append(p.names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// NewProperties builds a source from an explicit map, for callers that
// already extracted their configuration.
func NewProperties(values map[string]string) *Properties {
	p := &Properties{values: make(map[string]string, len(values))}
	for name, value := range values {
		p.values[name] = value
		p.names = append(p.names, name)
	}
	return p
}

// Get returns the raw value of a property.
func (p *Properties) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the property names.
func (p *Properties) Names() []string {
	return append([]string(nil), p.names...)
}
