package airy_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/njchilds90/airy"
	"github.com/njchilds90/airy/gosymbol"
)

// call decodes the request the way the HTTP server does.
func call(tool string, params string) airy.ToolResponse {
	var req airy.ToolRequest
	Expect(json.Unmarshal([]byte(`{"tool": "`+tool+`", "params": `+params+`}`), &req)).To(Succeed())
	return airy.HandleToolCall(req)
}

var _ = Describe("Tool calls", func() {
	It("lists every tool in the schema", func() {
		Expect(airy.ToolNames()).To(ConsistOf(
			"laplacian", "biharmonic", "stress_field", "radial_solution", "axisymmetric_stress",
			"pressure_vessel", "simplify", "diff", "substitute", "to_latex",
		))
	})

	It("solves a numeric pressure vessel", func() {
		resp := call("pressure_vessel", `{"a": 1, "b": 2, "p_in": 100, "p_out": 0, "samples": 3}`)
		Expect(resp.Error).To(BeEmpty())
		result := resp.Result.(map[string]interface{})
		Expect(result).To(HaveKey("A"))
		Expect(result["samples"]).To(HaveLen(3))
	})

	It("bounds the sample count", func() {
		for _, samples := range []string{"1e12", "2.5", "1"} {
			resp := call("pressure_vessel", `{"a": 1, "b": 2, "p_in": 100, "p_out": 0, "samples": `+samples+`}`)
			Expect(resp.Error).To(ContainSubstring("param samples"))
		}
	})

	It("reports degenerate geometry", func() {
		resp := call("pressure_vessel", `{"a": 1, "b": 1}`)
		Expect(resp.Error).To(ContainSubstring("degenerate geometry"))
	})

	It("simplifies an expression", func() {
		resp := call("simplify", `{"expr": {"type": "add", "terms": [
			{"type": "pow", "base": {"type": "func", "name": "sin", "arg": {"type": "sym", "name": "theta"}}, "exp": {"type": "num", "value": "2"}},
			{"type": "pow", "base": {"type": "func", "name": "cos", "arg": {"type": "sym", "name": "theta"}}, "exp": {"type": "num", "value": "2"}}
		]}}`)
		Expect(resp.Error).To(BeEmpty())
		Expect(resp.String).To(Equal("1"))
	})

	It("substitutes with checks", func() {
		resp := call("substitute", `{"expr": {"type": "sym", "name": "x"}, "bindings": {"y": {"type": "num", "value": "1"}}}`)
		Expect(resp.Error).To(ContainSubstring("not present"))
	})

	It("differentiates an undefined function", func() {
		resp := call("diff", `{"expr": {"type": "function", "name": "phi", "args": ["r", "theta"]}, "var": "r"}`)
		Expect(resp.Error).To(BeEmpty())
		Expect(resp.String).To(Equal("phi_r"))
	})

	It("returns the radial basis", func() {
		resp := call("radial_solution", `{}`)
		Expect(resp.Error).To(BeEmpty())
		Expect(resp.Result.(map[string]interface{})["basis"]).To(HaveLen(4))
	})

	It("rejects unknown tools", func() {
		Expect(call("integrate", `{}`).Error).To(ContainSubstring("unknown tool"))
	})

	It("keeps kernel JSON in results", func() {
		resp := call("laplacian", `{"expr": {"type": "pow", "base": {"type": "sym", "name": "r"}, "exp": {"type": "num", "value": "2"}}}`)
		b, err := json.Marshal(resp.Result)
		Expect(err).NotTo(HaveOccurred())
		e, err := gosymbol.ParseJSON(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.String()).To(Equal("4"))
	})
})
