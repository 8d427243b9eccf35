package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is a YAML mapping decoded in source order. Merge keys are expanded and
// a repeated key keeps its first position but its last value and line.
type Map[V any] struct {
	entries []Entry[V]
}

// Entry is one key of a Map along with the line the key appears on.
type Entry[V any] struct {
	Key   string
	Value V
	Line  int
}

func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	entries, err := decodeEntries[V](node, 0)
	if err != nil {
		return err
	}
	m.entries = entries
	return nil
}

// decodeEntries decodes a mapping node, expanding merge keys (<<). Merged
// entries come first and are dropped when the mapping sets the same key
// itself; across several merge sources the first one wins. A non-zero line
// overrides the line of every entry, so merged keys point at the <<.
func decodeEntries[V any](node *yaml.Node, line int) ([]Entry[V], error) {
	var explicit, merged []Entry[V]
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == mergeTag {
			at := line
			if at == 0 {
				at = key.Line
			}
			sources, err := mergeSources(value)
			if err != nil {
				return nil, err
			}
			for _, src := range sources {
				entries, err := decodeEntries[V](src, at)
				if err != nil {
					return nil, err
				}
				merged = append(merged, entries...)
			}
			continue
		}

		var v V
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("key %q: %w", key.Value, err)
		}
		at := key.Line
		if line != 0 {
			at = line
		}
		explicit = appendOrReplace(explicit, Entry[V]{Key: key.Value, Value: v, Line: at})
	}
	if len(merged) == 0 {
		return explicit, nil
	}

	seen := make(map[string]bool, len(explicit)+len(merged))
	for _, e := range explicit {
		seen[e.Key] = true
	}
	out := make([]Entry[V], 0, len(merged)+len(explicit))
	for _, e := range merged {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		out = append(out, e)
	}
	return append(out, explicit...), nil
}

func appendOrReplace[V any](entries []Entry[V], e Entry[V]) []Entry[V] {
	for i := range entries {
		if entries[i].Key == e.Key {
			entries[i].Value, entries[i].Line = e.Value, e.Line
			return entries
		}
	}
	return append(entries, e)
}

const mergeTag = "!!merge"

// mergeSources returns the mappings a merge value refers to: one mapping or
// alias, or a sequence of them.
func mergeSources(node *yaml.Node) ([]*yaml.Node, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{node}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind == yaml.AliasNode {
				n = n.Alias
			}
			if n.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge sequence may only hold mappings", n.Line)
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", node.Line)
}

func (m Map[V]) Len() int { return len(m.entries) }

// Entries returns the entries in source order.
func (m Map[V]) Entries() []Entry[V] { return m.entries }

// Keys returns the keys in source order.
func (m Map[V]) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the value stored under key.
func (m Map[V]) Get(key string) (V, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}
