package duplicates

import (
	"fmt"
	"strings"
)

// Style selects how a DuplicateError renders its occurrences.
type Style int

const (
	// FileStyle names the model on every occurrence, for file-wide namespaces.
	FileStyle Style = iota
	// ModelStyle names the model once, after the occurrence list.
	ModelStyle
	// DimensionStyle and MetricStyle render the per-category checks.
	DimensionStyle
	MetricStyle
)

// DuplicateError reports a name declared more than once in one namespace.
type DuplicateError struct {
	Name        string
	Model       string
	Occurrences []Occurrence
	Style       Style
	// ShowLines appends the source line to every occurrence.
	ShowLines bool
}

func (e *DuplicateError) label(o Occurrence) string {
	l := o.Label()
	if e.ShowLines && o.Line > 0 {
		l += fmt.Sprintf(" (line %d)", o.Line)
	}
	return l
}

func (e *DuplicateError) Error() string {
	n := len(e.Occurrences)
	labels := make([]string, n)
	for i, o := range e.Occurrences {
		labels[i] = e.label(o)
		if e.Style == FileStyle {
			labels[i] += fmt.Sprintf(" in model '%s'", o.Model)
		}
	}
	joined := strings.Join(labels, ", ")

	switch e.Style {
	case ModelStyle:
		return fmt.Sprintf("Duplicate name '%s' used %d times: %s in model '%s'", e.Name, n, joined, e.Model)
	case DimensionStyle:
		return fmt.Sprintf("Duplicate dimension name '%s' used %d times in model '%s': %s", e.Name, n, e.Model, joined)
	case MetricStyle:
		return fmt.Sprintf("Duplicate metric name '%s' used %d times in model '%s': %s", e.Name, n, e.Model, joined)
	}
	return fmt.Sprintf("Duplicate name '%s' used %d times: %s", e.Name, n, joined)
}
