package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("validate", func() {
	It("reports valid for a well-formed config", func() {
		dir := tempRepo()
		writeConfig(dir, "name: root\ncommands:\n  - name: lint\n    cmd: \"true\"\n")

		out := fnugOK(dir, "validate")
		Expect(out).To(Equal("valid"))
	})

	It("reports an error for an uncompilable regex and exits non-zero", func() {
		dir := tempRepo()
		writeConfig(dir, "name: root\ncommands:\n  - name: lint\n    cmd: \"true\"\n    auto: {regex: [\"(\"]}\n")

		out, err := fnug(dir, "validate")
		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("invalid regex"))
	})
})
