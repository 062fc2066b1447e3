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
func tempRepo() string {
	dir, err := os.MkdirTemp("", "fnug-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })

	git(dir, "init")
	git(dir, "config", "user.email", "test@test.com")
	git(dir, "config", "user.name", "Test")
	writeFile(dir, "README.md", "# test\n")
	git(dir, "add", ".")
	git(dir, "commit", "-m", "initial commit")

	return dir
}

func git(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "git %s failed: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// fnug runs the fnug binary in the given directory and returns combined
// stdout+stderr.
func fnug(dir string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// fnugOK runs the fnug binary and expects success.
func fnugOK(dir string, args ...string) string {
	out, err := fnug(dir, args...)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "fnug %s failed: %s", strings.Join(args, " "), out)
	return out
}

func writeFile(dir, name, content string) {
	p := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(p), 0o755)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	err = os.WriteFile(p, []byte(content), 0o644)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

func writeConfig(dir, content string) {
	writeFile(dir, ".fnug.yaml", content)
}

func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
