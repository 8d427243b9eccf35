package duplicates

import "fmt"

// Kind is the category of a declared name.
type Kind int

const (
	ModelMetric Kind = iota
	ColumnDimension
	AdditionalDimension
	ColumnMetric
)

func (k Kind) String() string {
	switch k {
	case ModelMetric:
		return "model-level metric"
	case ColumnDimension:
		return "column dimension"
	case AdditionalDimension:
		return "additional dimension"
	case ColumnMetric:
		return "column metric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsMetric reports whether k declares a metric.
func (k Kind) IsMetric() bool { return k == ModelMetric || k == ColumnMetric }

// Occurrence records where a name was declared.
type Occurrence struct {
	Model  string
	Column string
	Kind   Kind
	Line   int
}

// Label describes the occurrence without its model.
func (o Occurrence) Label() string {
	switch o.Kind {
	case ModelMetric:
		return "model-level metric"
	case ColumnDimension:
		return fmt.Sprintf("column '%s' dimension", o.Column)
	case AdditionalDimension:
		return fmt.Sprintf("additional dimension in column '%s'", o.Column)
	case ColumnMetric:
		return fmt.Sprintf("metric in column '%s'", o.Column)
	}
	return o.Kind.String()
}

// Index is a multimap from name to occurrences that remembers the order in
// which names were first seen.
type Index struct {
	order []string
	byKey map[string][]Occurrence
}

func NewIndex() *Index {
	return &Index{byKey: make(map[string][]Occurrence)}
}

func (x *Index) Add(name string, o Occurrence) {
	if _, ok := x.byKey[name]; !ok {
		x.order = append(x.order, name)
	}
	x.byKey[name] = append(x.byKey[name], o)
}

// Occurrences returns everything recorded under name.
func (x *Index) Occurrences(name string) []Occurrence {
	return x.byKey[name]
}

// Duplicates returns the names with more than one occurrence, in first-seen order.
func (x *Index) Duplicates() []string {
	var names []string
	for _, name := range x.order {
		if len(x.byKey[name]) > 1 {
			names = append(names, name)
		}
	}
	return names
}
