package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// ErrEmpty is returned for documents with no content (null, {}, [], "" and
// other falsy scalars). Callers treat these files as passing.
var ErrEmpty = errors.New("empty document")

// Parse validates data against the schema for v and decodes it. When v is
// Auto the version is picked by Detect. A schema violation is reported as a
// *ValidationError.
func Parse(data []byte, v Version) (*Document, error) {
	generic, err := toGeneric(data)
	if err != nil {
		return nil, err
	}
	if isFalsy(generic) {
		return nil, ErrEmpty
	}
	if v == Auto {
		v = detect(generic)
	}
	if err := validate(v, generic); err != nil {
		return nil, err
	}

	doc := &Document{Schema: v}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// Detect reports which schema version data is written for.
func Detect(data []byte) (Version, error) {
	generic, err := toGeneric(data)
	if err != nil {
		return Auto, err
	}
	return detect(generic), nil
}

// toGeneric converts YAML into the JSON value model the validator works on.
func toGeneric(data []byte) (any, error) {
	js, err := k8syaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return decodeJSON(js)
}

// decodeJSON decodes with json.Number for numbers, which is what the
// validator expects.
func decodeJSON(js []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return v, nil
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}
