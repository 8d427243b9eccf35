// Package duplicates finds metric and dimension names declared more than
// once in a dbt schema file.
package duplicates

import (
	"fmt"
	"strings"

	"github.com/re-cinq/lightdash-hooks/internal/schema"
)

const unknownModel = "unknown_model"

// Checker inspects a parsed document and returns one error per problem.
type Checker interface {
	Check(doc *schema.Document) []error
}

// Scope selects which categories of names share a namespace.
type Scope int

const (
	// ScopeAll puts metrics and dimensions in one namespace.
	ScopeAll Scope = iota
	// ScopeDimensions only compares dimensions with each other.
	ScopeDimensions
	// ScopeMetrics only compares metrics with each other.
	ScopeMetrics
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeDimensions:
		return "dimensions"
	case ScopeMetrics:
		return "metrics"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "dimensions", "dimension":
		return ScopeDimensions, nil
	case "metrics", "metric":
		return ScopeMetrics, nil
	}
	return ScopeAll, fmt.Errorf("unknown scope %q (want all, dimensions or metrics)", s)
}

// For returns the checker matching a schema version and scope. V1 files share
// one namespace across all models; V2 files get one namespace per model.
func For(v schema.Version, scope Scope, showLines bool) Checker {
	switch scope {
	case ScopeDimensions:
		return Dimensions{ShowLines: showLines}
	case ScopeMetrics:
		return Metrics{ShowLines: showLines}
	}
	if v == schema.V2 {
		return ModelScope{ShowLines: showLines}
	}
	return FileScope{ShowLines: showLines}
}

// FileScope checks for names reused anywhere in the file, reading metadata
// from the flat meta block only.
type FileScope struct {
	ShowLines bool
}

func (c FileScope) Check(doc *schema.Document) []error {
	idx := NewIndex()
	for i := range doc.Models {
		walkModel(&doc.Models[i], false, nil, idx.Add)
	}
	return collect(idx, "", FileStyle, c.ShowLines)
}

// ModelScope checks each model on its own, reading metadata from meta or
// config.meta.
type ModelScope struct {
	ShowLines bool
}

func (c ModelScope) Check(doc *schema.Document) []error {
	var errs []error
	for i := range doc.Models {
		idx := NewIndex()
		name := walkModel(&doc.Models[i], true, nil, idx.Add)
		errs = append(errs, collect(idx, name, ModelStyle, c.ShowLines)...)
	}
	return errs
}

// Dimensions checks each model for dimension names declared more than once.
type Dimensions struct {
	ShowLines bool
}

func (c Dimensions) Check(doc *schema.Document) []error {
	return perModel(doc, func(k Kind) bool { return !k.IsMetric() }, DimensionStyle, c.ShowLines)
}

// Metrics checks each model for metric names declared more than once.
type Metrics struct {
	ShowLines bool
}

func (c Metrics) Check(doc *schema.Document) []error {
	return perModel(doc, Kind.IsMetric, MetricStyle, c.ShowLines)
}

func perModel(doc *schema.Document, keep func(Kind) bool, style Style, showLines bool) []error {
	nested := doc.Schema == schema.V2
	var errs []error
	for i := range doc.Models {
		idx := NewIndex()
		name := walkModel(&doc.Models[i], nested, keep, idx.Add)
		errs = append(errs, collect(idx, name, style, showLines)...)
	}
	return errs
}

// walkModel reports every metric and dimension name declared by m and returns
// the model's display name. With nested set, config.meta is consulted when
// meta is absent. A nil keep accepts every kind.
func walkModel(m *schema.Model, nested bool, keep func(Kind) bool, add func(string, Occurrence)) string {
	model := m.Name
	if model == "" {
		model = unknownModel
	}
	emit := func(name string, o Occurrence) {
		if keep == nil || keep(o.Kind) {
			add(name, o)
		}
	}

	meta := m.Meta
	if nested {
		meta = m.EffectiveMeta()
	}
	if meta != nil {
		for _, e := range meta.Metrics.Entries() {
			emit(e.Key, Occurrence{Model: model, Kind: ModelMetric, Line: e.Line})
		}
	}

	for i := range m.Columns {
		col := &m.Columns[i]
		cm := col.Meta
		if nested {
			cm = col.EffectiveMeta()
		}
		if cm == nil || col.Name == "" {
			continue
		}
		// A column with a dimension block exposes its own name as a dimension.
		if cm.Dimension != nil {
			emit(col.Name, Occurrence{Model: model, Column: col.Name, Kind: ColumnDimension, Line: col.Line})
		}
		for _, e := range cm.AdditionalDimensions.Entries() {
			emit(e.Key, Occurrence{Model: model, Column: col.Name, Kind: AdditionalDimension, Line: e.Line})
		}
		for _, e := range cm.Metrics.Entries() {
			emit(e.Key, Occurrence{Model: model, Column: col.Name, Kind: ColumnMetric, Line: e.Line})
		}
	}
	return model
}

func collect(idx *Index, model string, style Style, showLines bool) []error {
	var errs []error
	for _, name := range idx.Duplicates() {
		errs = append(errs, &DuplicateError{
			Name:        name,
			Model:       model,
			Occurrences: idx.Occurrences(name),
			Style:       style,
			ShowLines:   showLines,
		})
	}
	return errs
}
