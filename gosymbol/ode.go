package gosymbol

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
)

// ============================================================
// Euler-Cauchy ordinary differential equations
// ============================================================

// Root is a rational root of an indicial polynomial.
type Root struct {
	Value        *Num
	Multiplicity int
}

// ODESolution is the general solution of a homogeneous Euler-Cauchy equation.
type ODESolution struct {
	Function  *Function
	Var       string
	Order     int
	Indicial  Expr // polynomial in m
	Roots     []Root
	Basis     []Expr
	Constants []*Sym
	General   Expr
}

// Equation returns fn = General.
func (s *ODESolution) Equation() *Equation { return Eq(s.Function, s.General) }

// IndicialSymbol is the variable of ODESolution.Indicial.
const IndicialSymbol = "m"

// maxRootCandidate bounds the constant terms searched for rational roots.
const maxRootCandidate = 1 << 40

// DSolveEuler solves expr = 0, a homogeneous linear equation in fn whose
// terms are c·x^(k+s)·d^k fn/dx^k for one shift s. Every indicial root must
// be rational; repeated roots contribute logarithmic basis functions.
func DSolveEuler(expr Expr, fn *Function) (*ODESolution, error) {
	if len(fn.args) != 1 || fn.TotalOrder() != 0 {
		return nil, fmt.Errorf("%s is not an undifferentiated function of one variable: %w", fn, ErrUnsupportedODE)
	}
	x := fn.args[0]
	num, _ := together(toPoly(expr))
	if len(num) == 0 {
		return nil, fmt.Errorf("equation is identically zero: %w", ErrUnsupportedODE)
	}

	byOrder := map[int]*big.Rat{}
	shift, haveShift := 0, false
	for _, m := range num.sorted() {
		order, power, err := eulerTerm(m, fn, x)
		if err != nil {
			return nil, err
		}
		if s := power - order; !haveShift {
			shift, haveShift = s, true
		} else if s != shift {
			return nil, fmt.Errorf("term %s is not equidimensional: %w", monoExpr(m), ErrUnsupportedODE)
		}
		if byOrder[order] == nil {
			byOrder[order] = new(big.Rat)
		}
		byOrder[order].Add(byOrder[order], m.coeff)
	}

	maxOrder := 0
	for k := range byOrder {
		if k > maxOrder {
			maxOrder = k
		}
	}
	if maxOrder == 0 {
		return nil, fmt.Errorf("no derivatives of %s: %w", fn.name, ErrUnsupportedODE)
	}

	// Σ c_k · m(m−1)…(m−k+1)
	coeffs := make([]*big.Rat, maxOrder+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	for k, c := range byOrder {
		falling := []*big.Rat{big.NewRat(1, 1)}
		for j := 0; j < k; j++ {
			falling = polyMulLinear(falling, big.NewRat(int64(-j), 1))
		}
		for i, f := range falling {
			coeffs[i].Add(coeffs[i], new(big.Rat).Mul(c, f))
		}
	}

	roots, rest, err := rationalRoots(coeffs)
	if err != nil {
		return nil, err
	}
	if len(rest) > 1 {
		return nil, fmt.Errorf("indicial polynomial has irrational or complex roots: %w", ErrUnsupportedODE)
	}

	sol := &ODESolution{
		Function: fn,
		Var:      x,
		Order:    maxOrder,
		Indicial: indicialExpr(coeffs),
		Roots:    roots,
	}
	xs := S(x)
	var terms []Expr
	for _, r := range roots {
		for j := 0; j < r.Multiplicity; j++ {
			b := MulOf(PowOf(xs, r.Value), PowOf(LnOf(xs), N(int64(j))))
			c := S("C" + strconv.Itoa(len(sol.Basis)+1))
			sol.Basis = append(sol.Basis, b)
			sol.Constants = append(sol.Constants, c)
			terms = append(terms, MulOf(c, b))
		}
	}
	sol.General = Expand(AddOf(terms...))

	if !IsZero(Replace(expr, fn.name, sol.General)) {
		return nil, fmt.Errorf("general solution does not satisfy the equation: %w", ErrUnsupportedODE)
	}
	return sol, nil
}

// eulerTerm reads c·x^power·fn^(order) from a numerator monomial.
func eulerTerm(m *monomial, fn *Function, x string) (order, power int, err error) {
	found := false
	for _, f := range m.factors {
		switch b := f.base.(type) {
		case *Function:
			if b.name != fn.name || len(b.args) != 1 || b.args[0] != x {
				return 0, 0, fmt.Errorf("unexpected function %s: %w", b, ErrUnsupportedODE)
			}
			if found || f.exp.Cmp(ratOne) != 0 {
				return 0, 0, fmt.Errorf("term %s is nonlinear in %s: %w", monoExpr(m), fn.name, ErrUnsupportedODE)
			}
			found = true
			order = b.order[0]
		case *Sym:
			if b.name != x || !f.exp.IsInt() {
				return 0, 0, fmt.Errorf("coefficient %s is not a power of %s: %w", monoExpr(m), x, ErrUnsupportedODE)
			}
			power = int(mustInt64(f.exp))
		default:
			return 0, 0, fmt.Errorf("unsupported factor %s: %w", b, ErrUnsupportedODE)
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("term %s does not involve %s, equation is inhomogeneous: %w", monoExpr(m), fn.name, ErrUnsupportedODE)
	}
	return order, power, nil
}

// polyMulLinear multiplies p (ascending coefficients) by (m + c).
func polyMulLinear(p []*big.Rat, c *big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(p)+1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, a := range p {
		out[i+1].Add(out[i+1], a)
		out[i].Add(out[i], new(big.Rat).Mul(a, c))
	}
	return out
}

func indicialExpr(coeffs []*big.Rat) Expr {
	m := S(IndicialSymbol)
	terms := make([]Expr, 0, len(coeffs))
	for i, c := range coeffs {
		if c.Sign() != 0 {
			terms = append(terms, MulOf(R(c), PowOf(m, N(int64(i)))))
		}
	}
	return Expand(AddOf(terms...))
}

func hornerRat(p []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// deflate divides p by (m − x), assuming x is a root.
func deflate(p []*big.Rat, x *big.Rat) []*big.Rat {
	n := len(p) - 1
	out := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(p[i], new(big.Rat).Mul(carry, x))
		out[i-1] = carry
	}
	return out
}

// rationalRoots finds every rational root with multiplicity, in ascending
// order, and returns the remaining factor.
func rationalRoots(p []*big.Rat) ([]Root, []*big.Rat, error) {
	for len(p) > 1 && p[len(p)-1].Sign() == 0 {
		p = p[:len(p)-1]
	}
	var roots []Root
	zero := new(big.Rat)
	if k := 0; p[0].Sign() == 0 {
		for len(p) > 1 && p[0].Sign() == 0 {
			p = p[1:]
			k++
		}
		roots = append(roots, Root{Value: R(zero), Multiplicity: k})
	}
	if len(p) == 1 {
		return roots, p, nil
	}

	// Integer coefficients with the same roots.
	lcm := big.NewInt(1)
	for _, c := range p {
		g := new(big.Int).GCD(nil, nil, lcm, c.Denom())
		lcm.Mul(lcm, new(big.Int).Quo(c.Denom(), g))
	}
	scaled := func(c *big.Rat) *big.Int {
		v := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcm))
		return new(big.Int).Abs(v.Num())
	}
	a0, an := scaled(p[0]), scaled(p[len(p)-1])
	if !a0.IsInt64() || !an.IsInt64() || a0.Int64() > maxRootCandidate || an.Int64() > maxRootCandidate {
		return nil, nil, fmt.Errorf("indicial coefficients too large: %w", ErrUnsupportedODE)
	}

	var cands []*big.Rat
	seen := map[string]bool{}
	for _, num := range divisors(a0.Int64()) {
		for _, den := range divisors(an.Int64()) {
			for _, sign := range []int64{1, -1} {
				c := big.NewRat(sign*num, den)
				if !seen[c.RatString()] {
					seen[c.RatString()] = true
					cands = append(cands, c)
				}
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].Cmp(cands[j]) < 0 })

	for _, c := range cands {
		k := 0
		for len(p) > 1 && hornerRat(p, c).Sign() == 0 {
			p = deflate(p, c)
			k++
		}
		if k > 0 {
			roots = append(roots, Root{Value: R(c), Multiplicity: k})
		}
	}
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].Value.val.Cmp(roots[j].Value.val) < 0 })
	return roots, p, nil
}

func divisors(n int64) []int64 {
	var out []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
			if d != n/d {
				out = append(out, n/d)
			}
		}
	}
	return out
}
