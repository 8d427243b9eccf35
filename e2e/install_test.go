package e2e_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lightdash-hooks install", func() {
	var dir string

	BeforeEach(func() {
		dir = tempRepo()
	})

	It("adds a marked block to the pre-commit hook", func() {
		hooksOK(dir, "install")

		hook := readFile(dir, ".git/hooks/pre-commit")
		Expect(hook).To(HavePrefix("#!/bin/sh\n"))
		Expect(hook).To(ContainSubstring("# >>> lightdash-hooks >>>"))
		Expect(hook).To(ContainSubstring("lightdash-hooks check-duplicate-dimensions-and-metrics --staged || exit 1"))
		Expect(hook).To(ContainSubstring("# <<< lightdash-hooks <<<"))
	})

	It("is idempotent", func() {
		hooksOK(dir, "install")
		hooksOK(dir, "install")
		hook := readFile(dir, ".git/hooks/pre-commit")
		Expect(strings.Count(hook, "# >>> lightdash-hooks >>>")).To(Equal(1))
	})

	It("blocks commits that stage duplicate names", func() {
		hooksOK(dir, "install", "--binary", binaryPath)

		writeFile(dir, "models/orders.yml", duplicateV1)
		git(dir, "add", "models/orders.yml")
		out, err := gitMay(dir, "commit", "-m", "add orders")
		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("Duplicate name 'revenue_total'"))

		writeFile(dir, "models/orders.yml", uniqueV1)
		git(dir, "add", "models/orders.yml")
		git(dir, "commit", "-m", "add orders")
	})

	It("preserves other hook content on uninstall", func() {
		hooksDir := filepath.Join(dir, ".git", "hooks")
		Expect(os.MkdirAll(hooksDir, 0o755)).To(Succeed())
		existing := "#!/bin/sh\necho 'my custom hook'\n"
		Expect(os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte(existing), 0o755)).To(Succeed())

		hooksOK(dir, "install")
		Expect(readFile(dir, ".git/hooks/pre-commit")).To(ContainSubstring("my custom hook"))

		hooksOK(dir, "uninstall")
		Expect(readFile(dir, ".git/hooks/pre-commit")).To(Equal(existing))
	})

	It("reports when there is nothing to uninstall", func() {
		out := hooksOK(dir, "uninstall")
		Expect(out).To(Equal("not installed"))
	})

	It("fails outside a git repository", func() {
		notRepo, err := os.MkdirTemp("", "lightdash-hooks-norepo-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(notRepo) })

		out := hooksFail(notRepo, "install")
		Expect(out).To(ContainSubstring("could not find git repository root"))
	})
})
