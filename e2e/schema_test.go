package e2e_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("schema", func() {
	It("prints a JSON Schema document describing .fnug.yaml", func() {
		dir := tempRepo()
		out := fnugOK(dir, "schema")

		var doc map[string]any
		Expect(json.Unmarshal([]byte(out), &doc)).To(Succeed())
		Expect(doc["title"]).To(Equal(".fnug.yaml"))
	})
})

var _ = Describe("version", func() {
	It("prints a version line", func() {
		dir := tempRepo()
		out := fnugOK(dir, "version")
		Expect(out).To(ContainSubstring("fnug"))
	})
})

var _ = Describe("explain", func() {
	It("prints a non-empty reference", func() {
		dir := tempRepo()
		out := fnugOK(dir, "explain")
		Expect(out).To(ContainSubstring("COMMANDS"))
	})
})
