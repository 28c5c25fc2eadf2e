package gosymbol

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================
// Top-level convenience functions
// ============================================================

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Sub substitutes value for varName without any checks.
func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

// DiffN differentiates expr n times with respect to varName.
func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the names of all symbols in e, including the
// arguments of undefined functions.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	case *Function:
		for _, a := range v.args {
			out[a] = struct{}{}
		}
	}
}

// ============================================================
// Checked substitution
// ============================================================

// Subs substitutes all bindings simultaneously, so {a: b, b: a} swaps the
// two symbols. A negative power whose base becomes zero is reported as
// ErrDivisionByZero before any product can cancel it.
func Subs(e Expr, bindings map[string]Expr) (Expr, error) {
	free := FreeSymbols(e)
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val := bindings[name]
		if _, ok := free[name]; !ok {
			return nil, fmt.Errorf("subs %q: %w", name, ErrUndefinedSymbol)
		}
		if divByZero(val) {
			return nil, fmt.Errorf("subs %q = %s: %w", name, val, ErrDivisionByZero)
		}
		if _, isSym := val.(*Sym); !isSym && usedAsArg(e, name) {
			return nil, fmt.Errorf("subs %q into a function argument: %w", name, ErrUnsupported)
		}
	}

	out, err := subs(e, bindings)
	if err != nil {
		return nil, err
	}
	out = out.Simplify()
	if divByZero(out) {
		return nil, fmt.Errorf("subs: %w", ErrDivisionByZero)
	}
	return out, nil
}

func subs(e Expr, bindings map[string]Expr) (Expr, error) {
	switch v := e.(type) {
	case *Sym:
		if val, ok := bindings[v.name]; ok {
			return val, nil
		}
		return v, nil
	case *Function:
		out := v.clone()
		for i, a := range out.args {
			if s, ok := bindings[a].(*Sym); ok {
				out.args[i] = s.name
			}
		}
		return out, nil
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			st, err := subs(t, bindings)
			if err != nil {
				return nil, err
			}
			ts[i] = st
		}
		return AddOf(ts...), nil
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			sf, err := subs(f, bindings)
			if err != nil {
				return nil, err
			}
			fs[i] = sf
		}
		return MulOf(fs...), nil
	case *Pow:
		base, err := subs(v.base, bindings)
		if err != nil {
			return nil, err
		}
		exp, err := subs(v.exp, bindings)
		if err != nil {
			return nil, err
		}
		if en, ok := exp.Simplify().(*Num); ok && en.IsNegative() && vanishes(base, v.base, bindings) {
			return nil, fmt.Errorf("subs: %s is zero in %s: %w", v.base, v, ErrDivisionByZero)
		}
		return PowOf(base, exp), nil
	case *Func:
		arg, err := subs(v.arg, bindings)
		if err != nil {
			return nil, err
		}
		return funcOf(v.name, arg).Simplify(), nil
	}
	return e, nil
}

// vanishes reports whether the substituted base is identically zero. The
// normal form is only consulted when a binding reached the base.
func vanishes(base, orig Expr, bindings map[string]Expr) bool {
	if n, ok := base.Simplify().(*Num); ok {
		return n.IsZero()
	}
	for name := range FreeSymbols(orig) {
		if _, ok := bindings[name]; ok {
			return IsZero(base)
		}
	}
	return false
}

func usedAsArg(e Expr, name string) bool {
	switch v := e.(type) {
	case *Function:
		for _, a := range v.args {
			if a == name {
				return true
			}
		}
	case *Add:
		for _, t := range v.terms {
			if usedAsArg(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if usedAsArg(f, name) {
				return true
			}
		}
	case *Pow:
		return usedAsArg(v.base, name) || usedAsArg(v.exp, name)
	case *Func:
		return usedAsArg(v.arg, name)
	}
	return false
}

// Evaluate substitutes bindings and requires an exact rational result.
func Evaluate(e Expr, bindings map[string]Expr) (*Num, error) {
	out, err := Subs(e, bindings)
	if err != nil {
		return nil, err
	}
	if n, ok := Simplify(out).(*Num); ok {
		return n, nil
	}
	return nil, fmt.Errorf("evaluate %s: %w", out, ErrNotExact)
}

// ============================================================
// Function replacement
// ============================================================

// Replace substitutes impl for the undefined function name; derivatives of
// the function become the matching derivatives of impl. impl is written in
// the function's own argument symbols.
func Replace(e Expr, name string, impl Expr) Expr {
	switch v := e.(type) {
	case *Function:
		if v.name != name {
			return v
		}
		out := impl
		for i, a := range v.args {
			for k := 0; k < v.order[i]; k++ {
				out = out.Diff(a)
			}
		}
		return out.Simplify()
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = Replace(t, name, impl)
		}
		return AddOf(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = Replace(f, name, impl)
		}
		return MulOf(fs...)
	case *Pow:
		return PowOf(Replace(v.base, name, impl), Replace(v.exp, name, impl))
	case *Func:
		return funcOf(v.name, Replace(v.arg, name, impl)).Simplify()
	}
	return e
}

// ============================================================
// Float evaluation
// ============================================================

// EvalFloat evaluates e in float64 with the symbol values in env.
func EvalFloat(e Expr, env map[string]float64) (float64, error) {
	v, err := evalFloat(e, env)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("eval %s: %w", e, ErrNotFinite)
	}
	return v, nil
}

func evalFloat(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Sym:
		x, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("eval %s: %w", v.name, ErrUnboundSymbol)
		}
		return x, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := evalFloat(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := evalFloat(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := evalFloat(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := evalFloat(v.exp, env)
		if err != nil {
			return 0, err
		}
		if b == 0 && x < 0 {
			return 0, fmt.Errorf("eval %s: %w", v, ErrDivisionByZero)
		}
		return math.Pow(b, x), nil
	case *Func:
		x, err := evalFloat(v.arg, env)
		if err != nil {
			return 0, err
		}
		switch v.name {
		case "sin":
			return math.Sin(x), nil
		case "cos":
			return math.Cos(x), nil
		case "tan":
			return math.Tan(x), nil
		case "exp":
			return math.Exp(x), nil
		case "ln":
			if x <= 0 {
				return 0, fmt.Errorf("eval %s: %w", v, ErrNotFinite)
			}
			return math.Log(x), nil
		}
	case *Function:
		return 0, fmt.Errorf("eval %s: undefined function: %w", v, ErrUnsupported)
	}
	return 0, fmt.Errorf("eval %s: %w", e, ErrUnsupported)
}
