package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[Version]string{
	V1: "schemas/lightdash-dbt-2.0.json",
	V2: "schemas/lightdash-dbt-2.5.json",
}

var (
	compileOnce sync.Once
	compiled    map[Version]*jsonschema.Schema
	compileErr  error
)

// JSONSchema returns the embedded JSON Schema for v.
func JSONSchema(v Version) ([]byte, error) {
	name, ok := schemaFiles[v]
	if !ok {
		return nil, fmt.Errorf("no JSON Schema for version %s", v)
	}
	return schemaFS.ReadFile(name)
}

func compileAll() (map[Version]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[Version]*jsonschema.Schema, len(schemaFiles))
		for v, name := range schemaFiles {
			data, err := schemaFS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("reading %s: %w", name, err)
				return
			}
			c := jsonschema.NewCompiler()
			url := "mem:///" + name
			if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("loading %s: %w", name, err)
				return
			}
			sch, err := c.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compiling %s: %w", name, err)
				return
			}
			compiled[v] = sch
		}
	})
	return compiled, compileErr
}

// Problem is a single schema violation.
type Problem struct {
	// Location is a dotted path into the document, e.g. models.0.meta.
	Location string
	Message  string
}

func (p Problem) String() string {
	return p.Location + ": " + p.Message
}

// ValidationError is returned when a document does not conform to its schema.
type ValidationError struct {
	Schema   Version
	Problems []Problem
}

func (e *ValidationError) Error() string {
	noun := "error"
	if len(e.Problems) != 1 {
		noun = "errors"
	}
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%d validation %s for %s: %s", len(e.Problems), noun, e.Schema.Title(), strings.Join(parts, "; "))
}

// validate checks a generic JSON value against the schema for v.
func validate(v Version, doc any) error {
	schemas, err := compileAll()
	if err != nil {
		return err
	}
	sch, ok := schemas[v]
	if !ok {
		return fmt.Errorf("no JSON Schema for version %s", v)
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Schema: v}
	collectProblems(ve, &out.Problems)
	return out
}

func collectProblems(ve *jsonschema.ValidationError, out *[]Problem) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Problem{Location: dottedPath(ve.InstanceLocation), Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectProblems(c, out)
	}
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// dottedPath turns a JSON pointer such as /models/0/name into models.0.name.
func dottedPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return "(root)"
	}
	parts := strings.Split(pointer, "/")
	for i, p := range parts {
		parts[i] = pointerUnescaper.Replace(p)
	}
	return strings.Join(parts, ".")
}
