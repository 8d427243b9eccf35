package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// tempRepo creates a fresh git repo in a temp directory and returns its path.
// The directory is cleaned up after the test.
func tempRepo() string {
	dir, err := os.MkdirTemp("", "lightdash-hooks-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })

	git(dir, "init")
	git(dir, "config", "user.email", "test@test.com")
	git(dir, "config", "user.name", "Test")
	// Create an initial commit so HEAD exists
	writeFile(dir, "README.md", "# test\n")
	git(dir, "add", ".")
	git(dir, "commit", "-m", "initial commit")

	return dir
}

// gitMay runs a git command that may fail and returns stdout+err.
func gitMay(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// git runs a git command in the given directory and returns stdout.
func git(dir string, args ...string) string {
	out, err := gitMay(dir, args...)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "git %s failed: %s", strings.Join(args, " "), out)
	return out
}

// hooksCmd runs the lightdash-hooks binary in the given directory and
// returns its combined output.
func hooksCmd(dir string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// hooksOK runs the binary and expects success.
func hooksOK(dir string, args ...string) string {
	out, err := hooksCmd(dir, args...)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "lightdash-hooks %s failed: %s", strings.Join(args, " "), out)
	return out
}

// hooksFail runs the binary and expects a non-zero exit.
func hooksFail(dir string, args ...string) string {
	out, err := hooksCmd(dir, args...)
	ExpectWithOffset(1, err).To(HaveOccurred(), "lightdash-hooks %s should fail: %s", strings.Join(args, " "), out)
	return out
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(dir, name, content string) {
	p := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(p), 0o755)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	err = os.WriteFile(p, []byte(content), 0o644)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

// readFile reads a file and returns its content.
func readFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}

// writeConfig writes a .lightdash-hooks.yaml config to the given directory.
func writeConfig(dir string, content string) {
	writeFile(dir, ".lightdash-hooks.yaml", content)
}

const uniqueV1 = `version: 2
models:
  - name: orders
    meta:
      metrics:
        order_count:
          type: count
          sql: ${order_id}
    columns:
      - name: amount
        meta:
          dimension:
            type: number
`

// duplicateV1 reuses revenue_total at model and column level.
const duplicateV1 = `version: 2
models:
  - name: orders
    meta:
      metrics:
        revenue_total:
          type: sum
          sql: ${revenue}
    columns:
      - name: revenue
        meta:
          metrics:
            revenue_total:
              type: sum
`

// sharedAcrossModelsV2 declares the same metric in two models, which is
// allowed per model but collides file-wide.
const sharedAcrossModelsV2 = `version: 2
models:
  - name: orders
    config:
      meta:
        metrics:
          row_count:
            type: count
            sql: "1"
  - name: users
    config:
      meta:
        metrics:
          row_count:
            type: count
            sql: "1"
`

// duplicateV2 reuses revenue as a model metric and a column dimension.
const duplicateV2 = `version: 2
models:
  - name: orders
    config:
      meta:
        metrics:
          revenue:
            type: sum
            sql: ${amount}
    columns:
      - name: revenue
        config:
          meta:
            dimension:
              type: number
`

// sharedAcrossModelsFlat is sharedAcrossModelsV2 written with flat meta.
const sharedAcrossModelsFlat = `version: 2
models:
  - name: orders
    meta:
      metrics:
        row_count:
          type: count
          sql: "1"
  - name: users
    meta:
      metrics:
        row_count:
          type: count
          sql: "1"
`
