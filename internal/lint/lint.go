// Package lint runs the duplicate-name check over schema files and renders
// the per-file results.
package lint

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/re-cinq/lightdash-hooks/internal/duplicates"
	"github.com/re-cinq/lightdash-hooks/internal/schema"
)

type Options struct {
	// Schema is the version files are validated against. Auto detects it per file.
	Schema    schema.Version
	Scope     duplicates.Scope
	ShowLines bool
	// Jobs bounds how many files are processed at once. 0 means one per CPU.
	Jobs int
	Log  *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// Result is the outcome of checking one file.
type Result struct {
	Path string
	// Schema is the version the file was validated against, Auto if it never
	// got that far.
	Schema schema.Version
	Errors []string
	// Skipped is set for empty documents, which always pass.
	Skipped bool
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// ProcessFile reads, validates and checks a single file. Read and parse
// failures are reported as errors of the result.
func ProcessFile(path string, opts Options) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Errors = []string{failedMessage(path, err)}
		return res
	}

	doc, err := schema.Parse(data, opts.Schema)
	var ve *schema.ValidationError
	switch {
	case errors.Is(err, schema.ErrEmpty):
		res.Skipped = true
		return res
	case errors.As(err, &ve):
		res.Schema = ve.Schema
		res.Errors = []string{fmt.Sprintf("Validation error in '%s': %s", path, ve)}
		return res
	case err != nil:
		res.Errors = []string{failedMessage(path, err)}
		return res
	}

	res.Schema = doc.Schema
	checker := duplicates.For(doc.Schema, opts.Scope, opts.ShowLines)
	for _, e := range checker.Check(doc) {
		res.Errors = append(res.Errors, e.Error())
	}
	return res
}

func failedMessage(path string, err error) string {
	return fmt.Sprintf("Failed to process '%s': %s", path, err)
}
