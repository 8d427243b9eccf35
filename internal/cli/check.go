package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/re-cinq/lightdash-hooks/internal/config"
	"github.com/re-cinq/lightdash-hooks/internal/discover"
	"github.com/re-cinq/lightdash-hooks/internal/duplicates"
	"github.com/re-cinq/lightdash-hooks/internal/fileutil"
	"github.com/re-cinq/lightdash-hooks/internal/git"
	"github.com/re-cinq/lightdash-hooks/internal/ignore"
	"github.com/re-cinq/lightdash-hooks/internal/lint"
	"github.com/re-cinq/lightdash-hooks/internal/schema"
)

// errChecksFailed is returned when at least one file has problems. The report
// has already been printed by then.
var errChecksFailed = errors.New("duplicate checks failed")

type checkFlags struct {
	verbose   bool
	staged    bool
	all       bool
	showLines bool
	scope     string
	schema    string
	jobs      int
}

func init() {
	rootCmd.AddCommand(newCheckCmd(
		"check-duplicate-dimensions-and-metrics",
		"Check schema files for duplicate metric and dimension names",
		schema.Auto, "check"))
	rootCmd.AddCommand(newCheckCmd(
		"check-duplicate-dimensions-and-metrics-v1",
		"Check lightdash-dbt-2.0 files (meta), names unique per file",
		schema.V1))
	rootCmd.AddCommand(newCheckCmd(
		"check-duplicate-dimensions-and-metrics-v2",
		"Check lightdash-dbt-2.5 files (config.meta), names unique per model",
		schema.V2))
}

// newCheckCmd builds a check command. A pinned version other than Auto fixes
// the schema; otherwise it comes from --schema or the config file.
func newCheckCmd(use, short string, pinned schema.Version, aliases ...string) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:     use + " [files...]",
		Aliases: aliases,
		Short:   short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f, pinned, args)
		},
	}

	f.register(cmd, pinned)
	return cmd
}

func (f *checkFlags) register(cmd *cobra.Command, pinned schema.Version) {
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "show detailed information about checked files")
	cmd.Flags().BoolVar(&f.staged, "staged", false, "check staged schema files when no files are given")
	cmd.Flags().BoolVar(&f.all, "all", false, "check every file matching the config include globs when no files are given")
	cmd.Flags().BoolVar(&f.showLines, "show-lines", false, "append source line numbers to reported occurrences")
	cmd.Flags().StringVar(&f.scope, "scope", "all", "names compared: all, dimensions or metrics")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files checked concurrently (0 = number of CPUs)")
	if pinned == schema.Auto {
		cmd.Flags().StringVar(&f.schema, "schema", "auto", "schema version: auto, v1 or v2")
	}
	cmd.MarkFlagsMutuallyExclusive("staged", "all")
}

func runCheck(cmd *cobra.Command, f *checkFlags, pinned schema.Version, args []string) error {
	cfg, err := loadAndValidateConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := f.lintOptions(cmd, cfg, pinned)
	if err != nil {
		return err
	}

	files, err := f.resolveFiles(cfg, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No files provided to check.")
		return nil
	}

	log.Info("checking files",
		zap.Int("files", len(files)),
		zap.Stringer("schema", opts.Schema),
		zap.Stringer("scope", opts.Scope))

	report, err := lint.Run(cmd.Context(), files, opts)
	if err != nil {
		return err
	}
	if err := report.Write(out, f.verbose); err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		log.Debug("checks failed", zap.Error(err))
		return fmt.Errorf("%w: %w", errChecksFailed, err)
	}
	return nil
}

// lintOptions merges flags over the config file. Flags only win when set.
func (f *checkFlags) lintOptions(cmd *cobra.Command, cfg *config.Config, pinned schema.Version) (lint.Options, error) {
	opts := lint.Options{
		Schema:    pinned,
		ShowLines: f.showLines || cfg.ShowLines,
		Jobs:      cfg.Jobs,
		Log:       log,
	}

	if pinned == schema.Auto {
		v, err := cfg.SchemaVersion()
		if err != nil {
			return opts, err
		}
		if cmd.Flags().Changed("schema") {
			if v, err = schema.ParseVersion(f.schema); err != nil {
				return opts, err
			}
		}
		opts.Schema = v
	}

	scope, err := cfg.CheckScope()
	if err != nil {
		return opts, err
	}
	if cmd.Flags().Changed("scope") {
		if scope, err = duplicates.ParseScope(f.scope); err != nil {
			return opts, err
		}
	}
	opts.Scope = scope

	if cmd.Flags().Changed("jobs") {
		if f.jobs < 0 {
			return opts, fmt.Errorf("--jobs must not be negative, got %d", f.jobs)
		}
		opts.Jobs = f.jobs
	}
	return opts, nil
}

// resolveFiles returns the files to check: the arguments, or the staged or
// discovered files when none are given, minus excluded ones.
func (f *checkFlags) resolveFiles(cfg *config.Config, args []string) ([]string, error) {
	files := args
	switch {
	case len(args) > 0:
	case f.staged:
		staged, err := stagedSchemaFiles()
		if err != nil {
			return nil, err
		}
		files = staged
	case f.all:
		found, err := discover.Files(configDir(), cfg.Include)
		if err != nil {
			return nil, err
		}
		files = relToWorkdir(fileutil.Under(configDir(), found))
	}

	if len(files) == 0 {
		return nil, nil
	}

	matcher, err := ignore.Load(configDir(), cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("loading exclude patterns: %w", err)
	}
	return excludeFiles(matcher, configDir(), files), nil
}

// excludeFiles drops the files whose path relative to base matches an
// exclude pattern. Kept files keep the spelling they were given in.
func excludeFiles(matcher *ignore.Matcher, base string, files []string) []string {
	rel := make([]string, len(files))
	for i, p := range files {
		rel[i] = fileutil.Rel(base, p)
	}
	if matcher.AllIgnored(rel) {
		log.Info("all files excluded", zap.Int("files", len(files)))
		return nil
	}

	var kept []string
	for i, p := range files {
		if matcher.Ignored(rel[i]) {
			log.Info("skipping excluded file", zap.String("file", p))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func stagedSchemaFiles() ([]string, error) {
	root, err := resolveRepo()
	if err != nil {
		return nil, err
	}
	staged, err := git.StagedFiles(root)
	if err != nil {
		return nil, err
	}
	var schemaFiles []string
	for _, p := range staged {
		if discover.IsSchemaFile(p) {
			schemaFiles = append(schemaFiles, p)
		}
	}
	return relToWorkdir(fileutil.Under(root, schemaFiles)), nil
}

func relToWorkdir(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = fileutil.Rel(".", p)
	}
	return out
}
