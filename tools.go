package airy

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/njchilds90/airy/gosymbol"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func respond(e gosymbol.Expr) ToolResponse {
	return ToolResponse{Result: gosymbol.ToMap(e), LaTeX: e.LaTeX(), String: e.String()}
}

func respondStress(s PolarStress) ToolResponse {
	result := map[string]interface{}{}
	latex := ""
	str := ""
	for i, c := range s.Components() {
		result[c.Name] = gosymbol.ToMap(c.Expr)
		if i > 0 {
			latex += ",\\quad "
			str += "; "
		}
		latex += c.Name + " = " + c.Expr.LaTeX()
		str += c.Name + " = " + c.Expr.String()
	}
	return ToolResponse{Result: result, LaTeX: latex, String: str}
}

func fail(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

// HandleToolCall dispatches one tool call. Expressions travel in the
// gosymbol JSON form.
func HandleToolCall(req ToolRequest) ToolResponse {
	p := NewPolar()
	getExpr := func(key string) (gosymbol.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return gosymbol.FromJSON(val)
	}
	optExpr := func(key string, def gosymbol.Expr) (gosymbol.Expr, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getExpr(key)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	// numbers or expression objects
	getValue := func(key string, def gosymbol.Expr) (gosymbol.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		switch val := v.(type) {
		case float64:
			return gosymbol.NFloat(val), nil
		case map[string]interface{}:
			return gosymbol.FromJSON(val)
		}
		return nil, fmt.Errorf("param %s must be a number or expression", key)
	}

	switch req.Tool {
	case "laplacian", "biharmonic":
		f, err := optExpr("expr", p.Phi())
		if err != nil {
			return fail(err)
		}
		if req.Tool == "laplacian" {
			return respond(p.Laplacian(f))
		}
		return respond(p.Biharmonic(f))

	case "stress_field":
		phi, err := optExpr("phi", p.Phi())
		if err != nil {
			return fail(err)
		}
		s, err := p.StressField(phi)
		if err != nil {
			return fail(err)
		}
		return respondStress(s)

	case "radial_solution":
		sol, err := p.SolveRadialBiharmonic()
		if err != nil {
			return fail(err)
		}
		basis := make([]string, len(sol.Basis))
		for i, b := range sol.Basis {
			basis[i] = b.String()
		}
		resp := respond(sol.General)
		resp.Result = map[string]interface{}{
			"general":  gosymbol.ToMap(sol.General),
			"basis":    basis,
			"indicial": sol.Indicial.String(),
		}
		return resp

	case "axisymmetric_stress":
		s, err := p.AxisymmetricStress()
		if err != nil {
			return fail(err)
		}
		if name, ok := req.Params["policy"]; ok {
			switch name {
			case "solid":
				s, err = Solid.Apply(s)
			case "hollow":
				s, err = Hollow.Apply(s)
			default:
				return ToolResponse{Error: fmt.Sprintf("unknown policy %v", name)}
			}
			if err != nil {
				return fail(err)
			}
		}
		return respondStress(s)

	case "pressure_vessel":
		def := SymbolicVessel()
		var v Vessel
		var err error
		if v.Inner, err = getValue("a", def.Inner); err != nil {
			return fail(err)
		}
		if v.Outer, err = getValue("b", def.Outer); err != nil {
			return fail(err)
		}
		if v.PIn, err = getValue("p_in", def.PIn); err != nil {
			return fail(err)
		}
		if v.POut, err = getValue("p_out", def.POut); err != nil {
			return fail(err)
		}
		sol, err := p.SolveVessel(v)
		if err != nil {
			return fail(err)
		}
		resp := respondStress(sol.Stress)
		result := resp.Result.(map[string]interface{})
		result["A"] = gosymbol.ToMap(sol.A)
		result["C"] = gosymbol.ToMap(sol.C)
		if n, ok := req.Params["samples"].(float64); ok && v.IsNumeric() {
			if n != math.Trunc(n) || n < 2 || n > MaxSamples {
				return ToolResponse{Error: fmt.Sprintf("param samples must be an integer in [2, %d]", MaxSamples)}
			}
			pts, err := sol.Sample(int(n))
			if err != nil {
				return fail(err)
			}
			result["samples"] = pts
		}
		return resp

	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(gosymbol.Simplify(e))

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(gosymbol.Diff(e, v))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		raw, ok := req.Params["bindings"].(map[string]interface{})
		if !ok {
			return ToolResponse{Error: "param bindings must be an object of expressions"}
		}
		bindings := map[string]gosymbol.Expr{}
		for name, b := range raw {
			obj, ok := b.(map[string]interface{})
			if !ok {
				return ToolResponse{Error: fmt.Sprintf("binding %s must be an expression", name)}
			}
			val, err := gosymbol.FromJSON(obj)
			if err != nil {
				return fail(err)
			}
			bindings[name] = val
		}
		out, err := gosymbol.Subs(e, bindings)
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: e.LaTeX(), LaTeX: e.LaTeX(), String: e.String()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the tool schema for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("laplacian", "Polar Laplacian of expr (default φ(r, θ))", nil, map[string]string{"expr": "object"}),
		ts("biharmonic", "Polar biharmonic operator of expr (default φ(r, θ))", nil, map[string]string{"expr": "object"}),
		ts("stress_field", "Polar stresses σrr, σθθ, σrθ of an Airy function", nil, map[string]string{"phi": "object"}),
		ts("radial_solution", "General solution of ∇⁴φ(r) = 0", nil, map[string]string{}),
		ts("axisymmetric_stress", "Axisymmetric stresses; optional policy solid|hollow", nil, map[string]string{"policy": "string"}),
		ts("pressure_vessel", "Lamé thick-walled cylinder. a, b, p_in, p_out are numbers or expressions", nil,
			map[string]string{"a": "number", "b": "number", "p_in": "number", "p_out": "number", "samples": "integer"}),
		ts("simplify", "Canonical single-fraction form", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("diff", "Derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("substitute", "Simultaneous checked substitution", []string{"expr", "bindings"}, map[string]string{"expr": "object", "bindings": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// ToolNames lists the dispatchable tools in lexical order.
func ToolNames() []string {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	_ = json.Unmarshal([]byte(ToolSpec()), &spec)
	names := make([]string, len(spec.Tools))
	for i, t := range spec.Tools {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
