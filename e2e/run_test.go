package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("check", func() {
	It("succeeds when every always-selected command exits zero", func() {
		dir := tempRepo()
		writeConfig(dir, "name: root\ncommands:\n  - name: ok\n    cmd: \"true\"\n    auto: {always: true}\n")

		out, err := fnug(dir, "check")
		Expect(err).NotTo(HaveOccurred(), out)
	})

	It("fails when a selected command exits non-zero", func() {
		dir := tempRepo()
		writeConfig(dir, "name: root\ncommands:\n  - name: bad\n    cmd: \"false\"\n    auto: {always: true}\n")

		out, err := fnug(dir, "check")
		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("FAIL"))
	})

	It("reports nothing selected when no command matches", func() {
		dir := tempRepo()
		writeConfig(dir, "name: root\ncommands:\n  - name: unreached\n    cmd: \"false\"\n")

		out := fnugOK(dir, "check")
		Expect(out).To(ContainSubstring("nothing selected"))
	})
})

var _ = Describe("hook install/remove", func() {
	It("installs a pre-commit hook that invokes fnug check", func() {
		dir := tempRepo()
		fnugOK(dir, "hook", "install")

		Expect(fileExists(dir, ".git/hooks/pre-commit")).To(BeTrue())
		Expect(fileExists(dir, ".gitignore")).To(BeTrue())

		fnugOK(dir, "hook", "remove")
	})
})
