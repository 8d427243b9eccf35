package e2e_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lightdash-hooks schema", func() {
	DescribeTable("prints valid JSON",
		func(version, title string) {
			out := hooksOK(tempRepo(), "schema", "--version", version)
			var doc map[string]any
			Expect(json.Unmarshal([]byte(out), &doc)).To(Succeed())
			Expect(doc["title"]).To(Equal(title))
		},
		Entry("v1", "v1", "lightdash-dbt-2.0"),
		Entry("v2", "v2", "lightdash-dbt-2.5"),
		Entry("config", "config", ".lightdash-hooks.yaml"),
	)

	It("rejects unknown versions", func() {
		hooksFail(tempRepo(), "schema", "--version", "v9")
	})
})

var _ = Describe("lightdash-hooks validate", func() {
	var dir string

	BeforeEach(func() {
		dir = tempRepo()
	})

	It("accepts a valid config", func() {
		writeConfig(dir, "schema: v2\nscope: metrics\nexclude:\n  - target/\n")
		Expect(hooksOK(dir, "validate")).To(Equal("valid"))
	})

	It("lists every problem", func() {
		writeConfig(dir, "schema: v3\njobs: -1\n")
		out := hooksFail(dir, "validate")
		Expect(out).To(ContainSubstring("schema: unknown schema version"))
		Expect(out).To(ContainSubstring("jobs: must not be negative"))
	})

	It("rejects unknown keys", func() {
		writeConfig(dir, "schemas: v2\n")
		hooksFail(dir, "validate")
	})
})

var _ = Describe("lightdash-hooks version", func() {
	It("prints the version", func() {
		Expect(hooksOK(tempRepo(), "version")).To(HavePrefix("lightdash-hooks "))
	})
})
