package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// namedList is one key of an object mapping names to string lists, such as
// {"Google": ["google", "goog"]}.
type namedList struct {
	Name   string
	Values []string
}

// readOrderedLists parses a name -> []string object keeping key order, which
// decides company detection priority and category order.
func readOrderedLists(path string) ([]namedList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lists []namedList
	if isYAML(path) {
		lists, err = orderedFromYAML(data)
	} else {
		lists, err = orderedFromJSON(jsonc.ToJSON(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return lists, nil
}

func orderedFromJSON(data []byte) ([]namedList, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var out []namedList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var values []string
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		out = append(out, namedList{Name: name, Values: values})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return out, nil
}

func orderedFromYAML(data []byte) ([]namedList, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errors.New("expected a YAML mapping")
	}

	out := make([]namedList, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		var values []string
		if err := m.Content[i+1].Decode(&values); err != nil {
			return nil, fmt.Errorf("key %q: %w", m.Content[i].Value, err)
		}
		out = append(out, namedList{Name: m.Content[i].Value, Values: values})
	}
	return out, nil
}
