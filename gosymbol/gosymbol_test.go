package gosymbol_test

import (
	"testing"

	"github.com/njchilds90/airy/gosymbol"
)

var (
	x     = gosymbol.S("x")
	y     = gosymbol.S("y")
	r     = gosymbol.S("r")
	theta = gosymbol.S("theta")
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := gosymbol.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := gosymbol.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := gosymbol.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_FloatIsExact(t *testing.T) {
	n := gosymbol.NFloat(0.5)
	if n.String() != "1/2" {
		t.Errorf("want 1/2, got %s", n.String())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := gosymbol.N(5).Diff("x")
	if gosymbol.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", gosymbol.String(result))
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	result := x.Sub("x", gosymbol.N(3))
	if gosymbol.String(result) != "3" {
		t.Errorf("want 3, got %s", gosymbol.String(result))
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	result := x.Sub("y", gosymbol.N(3))
	if gosymbol.String(result) != "x" {
		t.Errorf("want x, got %s", gosymbol.String(result))
	}
}

func TestSym_LaTeX_Greek(t *testing.T) {
	if got := theta.LaTeX(); got != `\theta` {
		t.Errorf("want \\theta, got %s", got)
	}
	if got := gosymbol.S("p_in").LaTeX(); got != `p_{\mathrm{in}}` {
		t.Errorf("want p_{\\mathrm{in}}, got %s", got)
	}
}

// ============================================================
// Arithmetic tests
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	got := gosymbol.AddOf(x, x)
	if got.String() != "2*x" {
		t.Errorf("want 2*x, got %s", got)
	}
}

func TestAdd_Cancel(t *testing.T) {
	got := gosymbol.AddOf(x, gosymbol.MulOf(gosymbol.N(-1), x))
	if got.String() != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestMul_MergesPowers(t *testing.T) {
	got := gosymbol.MulOf(x, x)
	if got.String() != "x^2" {
		t.Errorf("want x^2, got %s", got)
	}
}

func TestDiff_Power(t *testing.T) {
	got := gosymbol.Diff(gosymbol.PowOf(x, gosymbol.N(3)), "x")
	if got.String() != "3*x^2" {
		t.Errorf("want 3*x^2, got %s", got)
	}
}

func TestDiff_ChainRule(t *testing.T) {
	// d/dx sin(x^2) = 2x cos(x^2)
	got := gosymbol.Diff(gosymbol.SinOf(gosymbol.PowOf(x, gosymbol.N(2))), "x")
	want := gosymbol.MulOf(gosymbol.N(2), x, gosymbol.CosOf(gosymbol.PowOf(x, gosymbol.N(2))))
	if !gosymbol.Equivalent(got, want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_SinOdd(t *testing.T) {
	got := gosymbol.SinOf(gosymbol.MulOf(gosymbol.N(-1), theta))
	if got.String() != "-sin(theta)" {
		t.Errorf("want -sin(theta), got %s", got)
	}
}

func TestFunc_CosEven(t *testing.T) {
	got := gosymbol.CosOf(gosymbol.MulOf(gosymbol.N(-1), theta))
	if got.String() != "cos(theta)" {
		t.Errorf("want cos(theta), got %s", got)
	}
}

func TestFunc_SpecialValues(t *testing.T) {
	if got := gosymbol.CosOf(gosymbol.N(0)); got.String() != "1" {
		t.Errorf("cos(0): want 1, got %s", got)
	}
	if got := gosymbol.LnOf(gosymbol.N(1)); got.String() != "0" {
		t.Errorf("ln(1): want 0, got %s", got)
	}
	if got := gosymbol.LnOf(gosymbol.ExpOf(x)); got.String() != "x" {
		t.Errorf("ln(exp(x)): want x, got %s", got)
	}
}

func TestFunc_NoFloatingPoint(t *testing.T) {
	got := gosymbol.SinOf(gosymbol.N(1))
	if _, ok := got.Eval(); ok {
		t.Errorf("sin(1) must stay symbolic, got %s", got)
	}
}

// ============================================================
// Function tests
// ============================================================

func TestFunction_MixedPartialsCommute(t *testing.T) {
	f := gosymbol.Fn("f", "r", "theta")
	a := f.Diff("r").Diff("theta")
	b := f.Diff("theta").Diff("r")
	if !a.Equal(b) {
		t.Errorf("want %s == %s", a, b)
	}
	if a.String() != "f_rθ" {
		t.Errorf("want f_rθ, got %s", a)
	}
}

func TestFunction_DiffOtherVariable(t *testing.T) {
	phi := gosymbol.Fn("phi", "r")
	if got := phi.Diff("theta"); got.String() != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestFunction_LaTeX(t *testing.T) {
	f := gosymbol.Fn("f", "r", "theta").Derivative("r", 2)
	want := `\frac{\partial^{2} f}{\partial r^{2}}`
	if f.LaTeX() != want {
		t.Errorf("want %s, got %s", want, f.LaTeX())
	}
}

func TestFunction_Order(t *testing.T) {
	f := gosymbol.Fn("f", "r", "theta").Derivative("theta", 2).(*gosymbol.Function)
	if f.Order("theta") != 2 || f.Order("r") != 0 || f.TotalOrder() != 2 {
		t.Errorf("want orders (0, 2), got (%d, %d)", f.Order("r"), f.Order("theta"))
	}
	if !f.Base().Equal(gosymbol.Fn("f", "r", "theta")) {
		t.Errorf("want base f, got %s", f.Base())
	}
}
