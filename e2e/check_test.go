package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lightdash-hooks check", func() {
	var dir string

	BeforeEach(func() {
		dir = tempRepo()
	})

	It("prints a message and passes when no files are given", func() {
		out := hooksOK(dir, "check-duplicate-dimensions-and-metrics")
		Expect(out).To(Equal("No files provided to check."))
	})

	It("passes silently on unique names", func() {
		writeFile(dir, "models/orders.yml", uniqueV1)
		out := hooksOK(dir, "check-duplicate-dimensions-and-metrics-v1", "models/orders.yml")
		Expect(out).To(BeEmpty())
	})

	It("reports every passing file and a summary with --verbose", func() {
		writeFile(dir, "models/orders.yml", uniqueV1)
		writeFile(dir, "models/empty.yml", "")
		out := hooksOK(dir, "check", "--verbose", "models/orders.yml", "models/empty.yml")
		Expect(out).To(ContainSubstring("✓ No duplicates found in 'models/orders.yml'"))
		Expect(out).To(ContainSubstring("✓ No duplicates found in 'models/empty.yml'"))
		Expect(out).To(ContainSubstring("Processed 2/2 files."))
		Expect(out).To(ContainSubstring("All files passed duplicate checks!"))
	})

	It("fails on a name reused within a v1 file", func() {
		writeFile(dir, "models/orders.yml", duplicateV1)
		out := hooksFail(dir, "check-duplicate-dimensions-and-metrics-v1", "models/orders.yml")
		Expect(out).To(ContainSubstring("Errors found in 'models/orders.yml':"))
		Expect(out).To(ContainSubstring("  Duplicate name 'revenue_total' used 2 times: model-level metric in model 'orders', metric in column 'revenue' in model 'orders'"))
		Expect(out).NotTo(ContainSubstring("Error: "))
	})

	It("treats v1 files as one namespace and v2 files per model", func() {
		writeFile(dir, "models/shared.yml", sharedAcrossModelsFlat)

		out := hooksFail(dir, "check-duplicate-dimensions-and-metrics-v1", "models/shared.yml")
		Expect(out).To(ContainSubstring("Duplicate name 'row_count' used 2 times: model-level metric in model 'orders', model-level metric in model 'users'"))

		hooksOK(dir, "check-duplicate-dimensions-and-metrics-v2", "models/shared.yml")
	})

	It("detects nested config.meta automatically", func() {
		writeFile(dir, "models/shared.yml", sharedAcrossModelsV2)
		writeFile(dir, "models/orders.yml", duplicateV2)

		hooksOK(dir, "check", "models/shared.yml")
		out := hooksFail(dir, "check", "models/orders.yml")
		Expect(out).To(ContainSubstring("Duplicate name 'revenue' used 2 times: model-level metric, column 'revenue' dimension in model 'orders'"))
	})

	It("appends line numbers with --show-lines", func() {
		writeFile(dir, "models/orders.yml", duplicateV1)
		out := hooksFail(dir, "check", "--show-lines", "models/orders.yml")
		Expect(out).To(ContainSubstring("model-level metric (line 6) in model 'orders'"))
		Expect(out).To(ContainSubstring("metric in column 'revenue' (line 13) in model 'orders'"))
	})

	It("only compares metrics with --scope metrics", func() {
		writeFile(dir, "models/orders.yml", duplicateV2)
		hooksOK(dir, "check", "--scope", "metrics", "models/orders.yml")
	})

	It("reports schema violations", func() {
		writeFile(dir, "models/bad.yml", "version: 2\nmodels:\n  - description: missing name\n")
		out := hooksFail(dir, "check-duplicate-dimensions-and-metrics-v1", "models/bad.yml")
		Expect(out).To(ContainSubstring("Validation error in 'models/bad.yml':"))
	})

	It("reports files that cannot be read", func() {
		out := hooksFail(dir, "check", "models/missing.yml")
		Expect(out).To(ContainSubstring("Failed to process 'models/missing.yml':"))
	})

	It("keeps checking after a failing file", func() {
		writeFile(dir, "models/a.yml", duplicateV1)
		writeFile(dir, "models/b.yml", uniqueV1)
		out := hooksFail(dir, "check", "--verbose", "models/a.yml", "models/b.yml")
		Expect(out).To(ContainSubstring("Errors found in 'models/a.yml':"))
		Expect(out).To(ContainSubstring("✓ No duplicates found in 'models/b.yml'"))
		Expect(out).To(ContainSubstring("Processed 2/2 files."))
		Expect(out).NotTo(ContainSubstring("All files passed"))
	})

	Context("without file arguments", func() {
		It("checks staged schema files with --staged", func() {
			writeFile(dir, "models/orders.yml", duplicateV1)
			writeFile(dir, "models/unstaged.yml", duplicateV1)
			writeFile(dir, "notes.txt", "not yaml\n")
			git(dir, "add", "models/orders.yml", "notes.txt")

			out := hooksFail(dir, "check", "--staged")
			Expect(out).To(ContainSubstring("Errors found in 'models/orders.yml':"))
			Expect(out).NotTo(ContainSubstring("unstaged.yml"))
		})

		It("checks files matching include globs with --all", func() {
			writeConfig(dir, "include:\n  - \"models/**/*.yml\"\n")
			writeFile(dir, "models/marts/orders.yml", duplicateV1)
			writeFile(dir, "other/ignored.yml", duplicateV1)

			out := hooksFail(dir, "check", "--all")
			Expect(out).To(ContainSubstring("Errors found in 'models/marts/orders.yml':"))
			Expect(out).NotTo(ContainSubstring("other/ignored.yml"))
		})
	})

	It("skips files matched by exclude patterns", func() {
		writeConfig(dir, "exclude:\n  - \"legacy/\"\n")
		writeFile(dir, "legacy/old.yml", duplicateV1)
		writeFile(dir, "models/orders.yml", uniqueV1)

		hooksOK(dir, "check", "legacy/old.yml", "models/orders.yml")
		out := hooksOK(dir, "check", "legacy/old.yml")
		Expect(out).To(Equal("No files provided to check."))
	})

	It("uses the schema and scope from the config file", func() {
		writeConfig(dir, "schema: v2\n")
		writeFile(dir, "models/shared.yml", sharedAcrossModelsFlat)
		hooksOK(dir, "check", "models/shared.yml")

		writeConfig(dir, "schema: v1\n")
		hooksFail(dir, "check", "models/shared.yml")
	})

	It("rejects an invalid config", func() {
		writeConfig(dir, "scope: everything\n")
		writeFile(dir, "models/orders.yml", uniqueV1)
		out := hooksFail(dir, "check", "models/orders.yml")
		Expect(out).To(ContainSubstring("scope: unknown scope"))
	})

	It("fails when an explicit config path does not exist", func() {
		hooksFail(dir, "check", "-p", "missing.yaml")
	})
})
