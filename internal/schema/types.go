package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a parsed dbt schema file.
type Document struct {
	// Schema is the version the document was validated against. Never Auto.
	Schema Version `yaml:"-"`

	FormatVersion *int             `yaml:"version"`
	Models        []Model          `yaml:"models"`
	Metrics       []DbtMetric      `yaml:"metrics"`
	Seeds         []map[string]any `yaml:"seeds"`
	Snapshots     []map[string]any `yaml:"snapshots"`
	Tests         []map[string]any `yaml:"tests"`
	UnitTests     []map[string]any `yaml:"unit_tests"`
	Sources       []map[string]any `yaml:"sources"`
	Analyses      []map[string]any `yaml:"analyses"`
	Exposures     []map[string]any `yaml:"exposures"`
	Macros        []map[string]any `yaml:"macros"`
}

type Docs struct {
	Show *bool `yaml:"show"`
}

// Model is a dbt model definition.
type Model struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Docs        *Docs        `yaml:"docs"`
	Tests       []any        `yaml:"tests"`
	DataTests   []any        `yaml:"data_tests"`
	Meta        *ModelMeta   `yaml:"meta"`
	Config      *ModelConfig `yaml:"config"`
	Columns     []Column     `yaml:"columns"`

	// Line is where the model's mapping starts in the source file.
	Line int `yaml:"-"`
}

func (m *Model) UnmarshalYAML(node *yaml.Node) error {
	type plain Model
	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}
	m.Line = node.Line
	return nil
}

// EffectiveMeta returns meta, falling back to config.meta.
func (m *Model) EffectiveMeta() *ModelMeta {
	if m.Meta != nil {
		return m.Meta
	}
	if m.Config != nil {
		return m.Config.Meta
	}
	return nil
}

type ModelConfig struct {
	Meta *ModelMeta `yaml:"meta"`
}

type Join struct {
	Join   string `yaml:"join"`
	SQLOn  string `yaml:"sql_on"`
	Always *bool  `yaml:"always"`
}

type GroupDetails struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type DefaultTimeDimension struct {
	Field    string `yaml:"field"`
	Interval string `yaml:"interval"`
}

// Spotlight sets the visibility and categories of metrics in Spotlight.
type Spotlight struct {
	Visibility string   `yaml:"visibility"`
	Categories []string `yaml:"categories"`
}

type ModelMeta struct {
	Joins                []Join                `yaml:"joins"`
	OrderFieldsBy        string                `yaml:"order_fields_by"`
	GroupDetails         Map[GroupDetails]     `yaml:"group_details"`
	Metrics              Map[Metric]           `yaml:"metrics"`
	DefaultTimeDimension *DefaultTimeDimension `yaml:"default_time_dimension"`
	Spotlight            *Spotlight            `yaml:"spotlight"`
}

// Metric is a Lightdash metric declared on a model or a column.
type Metric struct {
	Type                 string                `yaml:"type"`
	Label                string                `yaml:"label"`
	Description          string                `yaml:"description"`
	SQL                  string                `yaml:"sql"`
	Hidden               *bool                 `yaml:"hidden"`
	Round                *float64              `yaml:"round"`
	Format               string                `yaml:"format"`
	Percentile           *float64              `yaml:"percentile"`
	Groups               []string              `yaml:"groups"`
	DefaultTimeDimension *DefaultTimeDimension `yaml:"default_time_dimension"`
	Spotlight            *Spotlight            `yaml:"spotlight"`
}

// Column is a dbt model column.
type Column struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Quote       *bool         `yaml:"quote"`
	Tests       []any         `yaml:"tests"`
	DataTests   []any         `yaml:"data_tests"`
	Tags        []string      `yaml:"tags"`
	Meta        *ColumnMeta   `yaml:"meta"`
	Config      *ColumnConfig `yaml:"config"`

	Line int `yaml:"-"`
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	type plain Column
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Line = node.Line
	return nil
}

// EffectiveMeta returns meta, falling back to config.meta.
func (c *Column) EffectiveMeta() *ColumnMeta {
	if c.Meta != nil {
		return c.Meta
	}
	if c.Config != nil {
		return c.Config.Meta
	}
	return nil
}

type ColumnConfig struct {
	Meta *ColumnMeta `yaml:"meta"`
	Tags []string    `yaml:"tags"`
}

type ColumnMeta struct {
	Metrics              Map[Metric]              `yaml:"metrics"`
	Dimension            *Dimension               `yaml:"dimension"`
	AdditionalDimensions Map[AdditionalDimension] `yaml:"additional_dimensions"`
}

// Dimension customises the dimension a column produces.
type Dimension struct {
	Type          string        `yaml:"type"`
	Label         string        `yaml:"label"`
	Description   string        `yaml:"description"`
	SQL           string        `yaml:"sql"`
	Hidden        *bool         `yaml:"hidden"`
	Round         *float64      `yaml:"round"`
	Format        string        `yaml:"format"`
	TimeIntervals TimeIntervals `yaml:"time_intervals"`
	Groups        []string      `yaml:"groups"`
}

type AdditionalDimension struct {
	Type          string        `yaml:"type"`
	Label         string        `yaml:"label"`
	Description   string        `yaml:"description"`
	SQL           string        `yaml:"sql"`
	TimeIntervals TimeIntervals `yaml:"time_intervals"`
}

// TimeIntervals is either an explicit list of intervals or one of the
// scalar modes "default" and "OFF".
type TimeIntervals struct {
	Intervals []string
	Mode      string
}

func (t *TimeIntervals) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.Mode = node.Value
		return nil
	case yaml.SequenceNode:
		return node.Decode(&t.Intervals)
	}
	return fmt.Errorf("line %d: time_intervals must be a list or a scalar", node.Line)
}

// Off reports whether time intervals were disabled.
func (t TimeIntervals) Off() bool { return t.Mode == "OFF" }

// DbtMetric is a top-level dbt metric (dbt 1.x metrics block).
type DbtMetric struct {
	Name        string           `yaml:"name"`
	Model       string           `yaml:"model"`
	Label       string           `yaml:"label"`
	Description string           `yaml:"description"`
	Type        string           `yaml:"type"`
	SQL         string           `yaml:"sql"`
	Timestamp   string           `yaml:"timestamp"`
	TimeGrains  []string         `yaml:"time_grains"`
	Dimensions  []string         `yaml:"dimensions"`
	Filters     []map[string]any `yaml:"filters"`
}
