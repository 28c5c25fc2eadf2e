package gosymbol

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Func — named elementary function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

var elementary = map[string]bool{"sin": true, "cos": true, "tan": true, "exp": true, "ln": true}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr  { return funcOf("ln", arg).Simplify() }

// Simplify applies only exact identities; numeric arguments other than the
// special values stay symbolic.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	switch f.name {
	case "sin", "tan":
		if isNumEqual(arg, 0) {
			return N(0)
		}
		if c, rest := extractCoefficient(arg); c.IsNegative() {
			return MulOf(N(-1), funcOf(f.name, MulOf(numNeg(c), rest)).Simplify())
		}
		if n, ok := arg.(*Num); ok && n.IsNegative() {
			return MulOf(N(-1), funcOf(f.name, numNeg(n)))
		}
	case "cos":
		if isNumEqual(arg, 0) {
			return N(1)
		}
		if c, rest := extractCoefficient(arg); c.IsNegative() {
			return funcOf(f.name, MulOf(numNeg(c), rest)).Simplify()
		}
		if n, ok := arg.(*Num); ok && n.IsNegative() {
			return funcOf(f.name, numNeg(n))
		}
	case "ln":
		if n2, ok := arg.(*Num); ok && n2.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if n2, ok := arg.(*Num); ok && n2.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	if isNumEqual(du, 0) {
		return N(0)
	}
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	default:
		panic("gosymbol: no derivative rule for " + f.name)
	}
	return MulOf(outer, du)
}

// Eval succeeds only where Simplify reaches an exact number.
func (f *Func) Eval() (*Num, bool) {
	if n, ok := f.Simplify().(*Num); ok {
		return n, true
	}
	return nil, false
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(v, 1)) == 0
}

// ============================================================
// Function — undefined function of symbols, with partial derivatives
// ============================================================

// Function is an undefined function applied to symbols, such as f(r, θ).
// order[i] counts the derivatives taken with respect to args[i], so mixed
// partials commute by construction.
type Function struct {
	name  string
	args  []string
	order []int
}

// Fn declares the undefined function name(args...).
func Fn(name string, args ...string) *Function {
	if len(args) == 0 {
		panic("gosymbol: function needs at least one argument")
	}
	return &Function{name: name, args: append([]string(nil), args...), order: make([]int, len(args))}
}

func (f *Function) Name() string   { return f.name }
func (f *Function) Args() []string { return append([]string(nil), f.args...) }

// Order returns the number of derivatives taken with respect to varName.
func (f *Function) Order(varName string) int {
	for i, a := range f.args {
		if a == varName {
			return f.order[i]
		}
	}
	return 0
}

// TotalOrder is the order of the partial derivative.
func (f *Function) TotalOrder() int {
	n := 0
	for _, o := range f.order {
		n += o
	}
	return n
}

// Base returns the undifferentiated function.
func (f *Function) Base() *Function { return Fn(f.name, f.args...) }

// Derivative differentiates n times with respect to varName.
func (f *Function) Derivative(varName string, n int) Expr {
	var e Expr = f
	for i := 0; i < n; i++ {
		e = e.Diff(varName)
	}
	return e
}

func (f *Function) clone() *Function {
	return &Function{
		name:  f.name,
		args:  append([]string(nil), f.args...),
		order: append([]int(nil), f.order...),
	}
}

func (f *Function) Simplify() Expr { return f }

func (f *Function) String() string {
	if f.TotalOrder() == 0 {
		return f.name
	}
	var sb strings.Builder
	sb.WriteString(f.name)
	sb.WriteString("_")
	compact := true
	for _, a := range f.args {
		if len([]rune(displayName(a))) != 1 {
			compact = false
		}
	}
	first := true
	for i, a := range f.args {
		for k := 0; k < f.order[i]; k++ {
			if !compact && !first {
				sb.WriteString(",")
			}
			sb.WriteString(displayName(a))
			first = false
		}
	}
	return sb.String()
}

func (f *Function) LaTeX() string {
	name := latexName(f.name)
	total := f.TotalOrder()
	if total == 0 {
		return name
	}
	var den strings.Builder
	for i, a := range f.args {
		if f.order[i] == 0 {
			continue
		}
		if den.Len() > 0 {
			den.WriteString(" ")
		}
		den.WriteString("\\partial " + latexName(a))
		if f.order[i] > 1 {
			den.WriteString(fmt.Sprintf("^{%d}", f.order[i]))
		}
	}
	if total == 1 {
		return "\\frac{\\partial " + name + "}{" + den.String() + "}"
	}
	return fmt.Sprintf("\\frac{\\partial^{%d} %s}{%s}", total, name, den.String())
}

// Sub renames an argument when value is a symbol; other values leave the
// function untouched (Subs reports that case as unsupported).
func (f *Function) Sub(varName string, value Expr) Expr {
	s, ok := value.(*Sym)
	if !ok {
		return f
	}
	out := f.clone()
	for i, a := range out.args {
		if a == varName {
			out.args[i] = s.name
		}
	}
	return out
}

func (f *Function) Diff(varName string) Expr {
	for i, a := range f.args {
		if a == varName {
			out := f.clone()
			out.order[i]++
			return out
		}
	}
	return N(0)
}

func (f *Function) Eval() (*Num, bool) { return nil, false }

func (f *Function) Equal(other Expr) bool {
	o, ok := other.(*Function)
	if !ok || o.name != f.name || len(o.args) != len(f.args) {
		return false
	}
	for i := range f.args {
		if f.args[i] != o.args[i] || f.order[i] != o.order[i] {
			return false
		}
	}
	return true
}

func (f *Function) exprType() string { return "function" }
func (f *Function) toJSON() map[string]interface{} {
	args := make([]interface{}, len(f.args))
	order := make([]interface{}, len(f.order))
	for i := range f.args {
		args[i] = f.args[i]
		order[i] = f.order[i]
	}
	return map[string]interface{}{"type": "function", "name": f.name, "args": args, "order": order}
}
