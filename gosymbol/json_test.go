package gosymbol_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/airy/gosymbol"
)

func TestJSON_RoundTrip(t *testing.T) {
	f := gosymbol.Fn("f", "r", "theta")
	exprs := []gosymbol.Expr{
		gosymbol.F(-3, 7),
		gosymbol.AddOf(pow(x, 2), gosymbol.MulOf(gosymbol.N(3), y)),
		gosymbol.MulOf(gosymbol.CosOf(theta), pow(r, -1), f.Derivative("theta", 2)),
		gosymbol.LnOf(r),
	}
	for _, e := range exprs {
		s, err := gosymbol.ToJSON(e)
		if err != nil {
			t.Fatal(err)
		}
		back, err := gosymbol.ParseJSON([]byte(s))
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !back.Equal(e) {
			t.Errorf("want %s, got %s", e, back)
		}
	}
}

func TestJSON_FunctionShape(t *testing.T) {
	s, err := gosymbol.ToJSON(gosymbol.Fn("phi", "r").Diff("r"))
	if err != nil {
		t.Fatal(err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		t.Fatal(err)
	}
	if obj["type"] != "function" || obj["name"] != "phi" {
		t.Errorf("unexpected JSON %s", s)
	}
}

func TestJSON_Errors(t *testing.T) {
	cases := []string{
		`{"value": "1"}`,
		`{"type": "num", "value": "abc"}`,
		`{"type": "func", "name": "gamma", "arg": {"type": "sym", "name": "x"}}`,
		`{"type": "function", "name": "f", "args": []}`,
		`{"type": "widget"}`,
	}
	for _, c := range cases {
		if _, err := gosymbol.ParseJSON([]byte(c)); err == nil {
			t.Errorf("want error for %s", c)
		}
	}
}

func TestJSON_NumIsString(t *testing.T) {
	s, _ := gosymbol.ToJSON(gosymbol.F(1, 3))
	if !strings.Contains(s, `"1/3"`) {
		t.Errorf("want exact rational string, got %s", s)
	}
}
