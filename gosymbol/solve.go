package gosymbol

import "fmt"

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }
func (e *Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}
func (e *Equation) LaTeX() string { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual is LHS − RHS in expanded form.
func (e *Equation) Residual() Expr {
	return Expand(AddOf(e.LHS, MulOf(N(-1), e.RHS)))
}

// Sub substitutes into both sides.
func (e *Equation) Sub(varName string, value Expr) *Equation {
	return Eq(e.LHS.Sub(varName, value), e.RHS.Sub(varName, value))
}

// ============================================================
// Linear systems
// ============================================================

// SolveLinearSystem solves a square system of equations linear in unknowns
// by Cramer's rule. Coefficients may be arbitrary expressions in other
// symbols; each solution is a reduced single fraction.
func SolveLinearSystem(eqs []*Equation, unknowns []string) (map[string]Expr, error) {
	n := len(unknowns)
	if n == 0 || len(eqs) != n {
		return nil, fmt.Errorf("%d equations in %d unknowns: %w", len(eqs), n, ErrInvalidSystem)
	}
	seen := map[string]bool{}
	for _, u := range unknowns {
		if seen[u] {
			return nil, fmt.Errorf("unknown %q listed twice: %w", u, ErrInvalidSystem)
		}
		seen[u] = true
	}

	a := NewMatrix(n, n)
	rhs := make([]Expr, n)
	for i, eq := range eqs {
		res := eq.Residual()
		constant := res
		for j, u := range unknowns {
			coeff := Expand(res.Diff(u))
			for _, v := range unknowns {
				if !IsZero(coeff.Diff(v)) {
					return nil, fmt.Errorf("equation %d in %q: %w", i+1, u, ErrNonlinear)
				}
			}
			a.Set(i, j, coeff)
			constant = constant.Sub(u, N(0))
		}
		rhs[i] = Expand(MulOf(N(-1), constant))
	}

	det := a.Det()
	if IsZero(det) {
		return nil, fmt.Errorf("determinant %s: %w", det, ErrSingularSystem)
	}
	out := make(map[string]Expr, n)
	for j, u := range unknowns {
		aj := a.Map(func(e Expr) Expr { return e })
		for i := 0; i < n; i++ {
			aj.Set(i, j, rhs[i])
		}
		out[u] = Simplify(MulOf(aj.Det(), PowOf(det, N(-1))))
	}
	return out, nil
}

// SolveLinearSystem2x2 solves a1·x + b1·y = c1, a2·x + b2·y = c2.
func SolveLinearSystem2x2(a1, b1, c1, a2, b2, c2 Expr) (xSol, ySol Expr, err error) {
	det := Expand(AddOf(MulOf(a1, b2), MulOf(N(-1), a2, b1)))
	if IsZero(det) {
		return nil, nil, fmt.Errorf("determinant %s: %w", det, ErrSingularSystem)
	}
	dx := AddOf(MulOf(c1, b2), MulOf(N(-1), c2, b1))
	dy := AddOf(MulOf(a1, c2), MulOf(N(-1), a2, c1))
	inv := PowOf(det, N(-1))
	return Simplify(MulOf(dx, inv)), Simplify(MulOf(dy, inv)), nil
}
