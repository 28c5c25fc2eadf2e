package gosymbol

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Normal form: sums of monomials over atoms
// ============================================================
//
// An expression is normalised into a poly: a map from monomial signature to
// a monomial coefficient·Π atom^exp. Atoms are symbols, elementary function
// applications with normalised arguments, undefined-function derivatives,
// non-integer powers, and sums that only ever appear with negative integer
// exponents. Positive integer powers of sums are always distributed.

type factor struct {
	key  string
	base Expr
	exp  *big.Rat
}

type monomial struct {
	coeff   *big.Rat
	factors []factor // sorted by key, exponents nonzero
}

type poly map[string]*monomial

// atomKey orders symbols before functions before derivatives before
// compound atoms, which keeps printed products readable.
func atomKey(e Expr) string {
	rank := "9"
	switch v := e.(type) {
	case *Sym:
		rank = "0"
	case *Func:
		rank = "1"
	case *Function:
		return "2:" + v.String() + "(" + strings.Join(v.args, ",") + ")"
	case *Pow:
		rank = "3"
	case *Add:
		rank = "4"
	}
	return rank + ":" + e.String()
}

func (m *monomial) signature() string {
	var sb strings.Builder
	for i, f := range m.factors {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(f.key)
		sb.WriteByte('^')
		sb.WriteString(f.exp.RatString())
	}
	return sb.String()
}

func (m *monomial) clone() *monomial {
	fs := make([]factor, len(m.factors))
	for i, f := range m.factors {
		fs[i] = factor{key: f.key, base: f.base, exp: new(big.Rat).Set(f.exp)}
	}
	return &monomial{coeff: new(big.Rat).Set(m.coeff), factors: fs}
}

// exponent returns the exponent of the atom with the given key, or zero.
func (m *monomial) exponent(key string) *big.Rat {
	for _, f := range m.factors {
		if f.key == key {
			return f.exp
		}
	}
	return new(big.Rat)
}

func monoMul(a, b *monomial) *monomial {
	out := &monomial{coeff: new(big.Rat).Mul(a.coeff, b.coeff)}
	i, j := 0, 0
	for i < len(a.factors) || j < len(b.factors) {
		switch {
		case j >= len(b.factors) || (i < len(a.factors) && a.factors[i].key < b.factors[j].key):
			f := a.factors[i]
			out.factors = append(out.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Set(f.exp)})
			i++
		case i >= len(a.factors) || b.factors[j].key < a.factors[i].key:
			f := b.factors[j]
			out.factors = append(out.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Set(f.exp)})
			j++
		default:
			exp := new(big.Rat).Add(a.factors[i].exp, b.factors[j].exp)
			if exp.Sign() != 0 {
				out.factors = append(out.factors, factor{key: a.factors[i].key, base: a.factors[i].base, exp: exp})
			}
			i++
			j++
		}
	}
	return out
}

func polyConst(c *big.Rat) poly {
	p := poly{}
	if c.Sign() != 0 {
		p[""] = &monomial{coeff: new(big.Rat).Set(c)}
	}
	return p
}

func polyAtom(base Expr, exp *big.Rat) poly {
	m := &monomial{coeff: big.NewRat(1, 1), factors: []factor{{key: atomKey(base), base: base, exp: new(big.Rat).Set(exp)}}}
	return poly{m.signature(): m}
}

func (p poly) addMono(m *monomial) {
	if m.coeff.Sign() == 0 {
		return
	}
	sig := m.signature()
	if cur, ok := p[sig]; ok {
		cur.coeff = new(big.Rat).Add(cur.coeff, m.coeff)
		if cur.coeff.Sign() == 0 {
			delete(p, sig)
		}
		return
	}
	p[sig] = m.clone()
}

func (p poly) add(q poly) poly {
	out := poly{}
	for _, m := range p {
		out.addMono(m)
	}
	for _, m := range q {
		out.addMono(m)
	}
	return out
}

func (p poly) mul(q poly) poly {
	out := poly{}
	for _, a := range p {
		for _, b := range q {
			out.addMono(monoMul(a, b))
		}
	}
	return out
}

func (p poly) scale(c *big.Rat) poly {
	out := poly{}
	for _, m := range p {
		n := m.clone()
		n.coeff.Mul(n.coeff, c)
		out.addMono(n)
	}
	return out
}

func (p poly) pow(n int64) poly {
	out := polyConst(big.NewRat(1, 1))
	for i := int64(0); i < n; i++ {
		out = out.mul(p)
	}
	return out
}

func (p poly) single() (*monomial, bool) {
	if len(p) != 1 {
		return nil, false
	}
	for _, m := range p {
		return m, true
	}
	return nil, false
}

func (p poly) constant() (*big.Rat, bool) {
	if len(p) == 0 {
		return new(big.Rat), true
	}
	m, ok := p.single()
	if !ok || len(m.factors) != 0 {
		return nil, false
	}
	return m.coeff, true
}

// sorted orders monomials by signature with the constant term last.
func (p poly) sorted() []*monomial {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "" || keys[j] == "" {
			return keys[j] == ""
		}
		return keys[i] < keys[j]
	})
	out := make([]*monomial, len(keys))
	for i, k := range keys {
		out[i] = p[k]
	}
	return out
}

// ------------------------------------------------------------
// Expr -> poly
// ------------------------------------------------------------

func toPoly(e Expr) poly {
	switch v := e.(type) {
	case *Num:
		return polyConst(v.val)
	case *Sym, *Function:
		return polyAtom(v, ratOne)
	case *Func:
		return funcPoly(v)
	case *Add:
		out := poly{}
		for _, t := range v.terms {
			for _, m := range toPoly(t) {
				out.addMono(m)
			}
		}
		return out
	case *Mul:
		out := polyConst(ratOne)
		for _, f := range v.factors {
			out = out.mul(toPoly(f))
			if len(out) == 0 {
				return out
			}
		}
		return out
	case *Pow:
		return powPoly(v)
	}
	return polyAtom(e, ratOne)
}

func canonical(e Expr) Expr { return fromPoly(toPoly(e)) }

func funcPoly(f *Func) poly {
	g := funcOf(f.name, canonical(f.arg)).Simplify()
	fn, ok := g.(*Func)
	if !ok {
		return toPoly(g)
	}
	if fn.name == "tan" {
		return polyAtom(funcOf("sin", fn.arg), ratOne).mul(polyAtom(funcOf("cos", fn.arg), ratNegOne))
	}
	return polyAtom(fn, ratOne)
}

func powPoly(p *Pow) poly {
	exp := p.exp.Simplify()
	en, ok := exp.(*Num)
	if !ok {
		return polyAtom(&Pow{base: canonical(p.base), exp: canonical(exp)}, ratOne)
	}
	if en.IsZero() {
		return polyConst(ratOne)
	}
	bp := toPoly(p.base)
	if c, isConst := bp.constant(); isConst {
		if n, exact := (&Pow{base: &Num{val: c}, exp: en}).Eval(); exact {
			return polyConst(n.val)
		}
		return polyAtom(&Pow{base: &Num{val: c}, exp: en}, ratOne)
	}
	if en.IsInteger() && en.IsPositive() {
		return bp.pow(mustInt64(en.val))
	}
	if m, single := bp.single(); single && (en.IsInteger() || m.coeff.Cmp(ratOne) == 0) {
		return monoPow(m, en.val)
	}
	if !en.IsInteger() {
		return polyAtom(&Pow{base: fromPoly(bp), exp: en}, ratOne)
	}
	return sumPower(bp, mustInt64(en.val))
}

// monoPow raises a monomial to a rational power; symbols are taken as
// positive reals, so (r^2)^(1/2) = r.
func monoPow(m *monomial, q *big.Rat) poly {
	out := &monomial{}
	if q.IsInt() {
		out.coeff = ratPowInt(m.coeff, mustInt64(q))
	} else {
		out.coeff = big.NewRat(1, 1)
	}
	for _, f := range m.factors {
		exp := new(big.Rat).Mul(f.exp, q)
		if exp.Sign() != 0 {
			out.factors = append(out.factors, factor{key: f.key, base: f.base, exp: exp})
		}
	}
	res := poly{}
	res.addMono(out)
	// Compound atoms raised to an integer keep their integer exponents; if an
	// expansion turned positive, distribute it.
	return expandCompound(res)
}

// sumPower raises a sum of several monomials to a negative integer n. The
// sum is written lead·g·q/M with q monic and primitive, so equal sums
// differing by sign or scale share one atom.
func sumPower(bp poly, n int64) poly {
	// Clear monomial denominators: multiply by M.
	minExp := map[string]factor{}
	for _, m := range bp {
		for _, f := range m.factors {
			if _, isAdd := f.base.(*Add); isAdd {
				continue
			}
			cur, seen := minExp[f.key]
			if !seen || f.exp.Cmp(cur.exp) < 0 {
				minExp[f.key] = factor{key: f.key, base: f.base, exp: f.exp}
			}
		}
	}
	clr := &monomial{coeff: big.NewRat(1, 1)}
	for _, f := range sortedFactors(minExp) {
		if f.exp.Sign() < 0 {
			clr.factors = append(clr.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Neg(f.exp)})
		}
	}
	q := bp.mul(poly{clr.signature(): clr})

	// Common monomial factor g of q.
	common := commonFactor(q)
	if len(common.factors) > 0 {
		q = q.mul(monoPow(common, ratNegOne))
	}

	lead := new(big.Rat).Set(q.sorted()[0].coeff)
	q = q.scale(new(big.Rat).Inv(lead))

	// base^n = lead^n · g^n · M^-n · q^n
	out := polyConst(ratPowInt(lead, n))
	out = out.mul(monoPow(common, big.NewRat(n, 1)))
	out = out.mul(monoPow(clr, big.NewRat(-n, 1)))
	if m, single := q.single(); single {
		return out.mul(monoPow(m, big.NewRat(n, 1)))
	}
	return out.mul(polyAtom(fromPoly(q), big.NewRat(n, 1)))
}

// commonFactor returns the monomial (coefficient 1) of simple atoms that
// divides every monomial of p with a positive exponent.
func commonFactor(p poly) *monomial {
	out := &monomial{coeff: big.NewRat(1, 1)}
	ms := p.sorted()
	if len(ms) == 0 {
		return out
	}
	for _, f := range ms[0].factors {
		if _, isAdd := f.base.(*Add); isAdd || f.exp.Sign() <= 0 {
			continue
		}
		lo := new(big.Rat).Set(f.exp)
		for _, m := range ms[1:] {
			e := m.exponent(f.key)
			if e.Cmp(lo) < 0 {
				lo.Set(e)
			}
		}
		if lo.Sign() > 0 {
			out.factors = append(out.factors, factor{key: f.key, base: f.base, exp: lo})
		}
	}
	return out
}

func sortedFactors(m map[string]factor) []factor {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]factor, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// expandCompound distributes compound (sum) atoms that carry a positive
// exponent.
func expandCompound(p poly) poly {
	out := poly{}
	for _, m := range p {
		rest := &monomial{coeff: new(big.Rat).Set(m.coeff)}
		acc := poly{}
		expanded := false
		for _, f := range m.factors {
			if _, isAdd := f.base.(*Add); isAdd && f.exp.Sign() > 0 && f.exp.IsInt() {
				if !expanded {
					acc = polyConst(ratOne)
					expanded = true
				}
				acc = acc.mul(toPoly(f.base).pow(mustInt64(f.exp)))
				continue
			}
			rest.factors = append(rest.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Set(f.exp)})
		}
		if !expanded {
			out.addMono(m)
			continue
		}
		for _, n := range acc.mul(poly{rest.signature(): rest}) {
			out.addMono(n)
		}
	}
	return out
}

// ------------------------------------------------------------
// poly -> Expr
// ------------------------------------------------------------

func fromPoly(p poly) Expr {
	ms := p.sorted()
	if len(ms) == 0 {
		return N(0)
	}
	if len(ms) == 1 {
		return monoExpr(ms[0])
	}
	terms := make([]Expr, len(ms))
	for i, m := range ms {
		terms[i] = monoExpr(m)
	}
	return &Add{terms: terms}
}

func monoExpr(m *monomial) Expr {
	coeff := &Num{val: new(big.Rat).Set(m.coeff)}
	if len(m.factors) == 0 {
		return coeff
	}
	fs := make([]Expr, 0, len(m.factors)+1)
	if !coeff.IsOne() {
		fs = append(fs, coeff)
	}
	for _, f := range m.factors {
		if f.exp.Cmp(ratOne) == 0 {
			fs = append(fs, f.base)
		} else {
			fs = append(fs, &Pow{base: f.base, exp: &Num{val: new(big.Rat).Set(f.exp)}})
		}
	}
	if len(fs) == 1 {
		return fs[0]
	}
	return &Mul{factors: fs}
}

// ============================================================
// Trigonometric reduction
// ============================================================

// trigReduce rewrites sin(u)^k, k >= 2, as sin(u)^(k mod 2)·(1 - cos(u)^2)^(k/2).
// The result is canonical for polynomials in sin u and cos u.
func trigReduce(p poly) poly {
	out := poly{}
	for _, m := range p {
		for _, n := range reduceMono(m) {
			out.addMono(n)
		}
	}
	return out
}

func reduceMono(m *monomial) poly {
	for i, f := range m.factors {
		fn, ok := f.base.(*Func)
		if !ok || fn.name != "sin" || !f.exp.IsInt() || f.exp.Cmp(big.NewRat(2, 1)) < 0 {
			continue
		}
		k := mustInt64(f.exp)
		rest := m.clone()
		if k%2 == 0 {
			rest.factors = append(rest.factors[:i], rest.factors[i+1:]...)
		} else {
			rest.factors[i].exp = big.NewRat(1, 1)
		}
		cos2 := polyAtom(funcOf("cos", fn.arg), big.NewRat(2, 1)).scale(ratNegOne)
		pyth := polyConst(ratOne).add(cos2).pow(k / 2)
		out := poly{}
		head := poly{rest.signature(): rest}
		for _, n := range head.mul(pyth) {
			for _, r := range reduceMono(n) {
				out.addMono(r)
			}
		}
		return out
	}
	return poly{m.signature(): m}
}

// ============================================================
// Rational normalisation
// ============================================================

// together writes p as num/den with no negative exponents left in num.
func together(p poly) (num, den poly) {
	num, den = p, polyConst(ratOne)
	for iter := 0; iter < 8; iter++ {
		compound := map[string]factor{}
		simple := map[string]factor{}
		for _, m := range num {
			for _, f := range m.factors {
				if f.exp.Sign() >= 0 {
					continue
				}
				target := simple
				if _, isAdd := f.base.(*Add); isAdd {
					target = compound
				}
				cur, seen := target[f.key]
				if !seen || f.exp.Cmp(cur.exp) < 0 {
					target[f.key] = factor{key: f.key, base: f.base, exp: f.exp}
				}
			}
		}
		if len(compound) == 0 && len(simple) == 0 {
			break
		}
		clr := &monomial{coeff: big.NewRat(1, 1)}
		for _, f := range sortedFactors(simple) {
			clr.factors = append(clr.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Neg(f.exp)})
		}
		for _, f := range sortedFactors(compound) {
			clr.factors = append(clr.factors, factor{key: f.key, base: f.base, exp: new(big.Rat).Neg(f.exp)})
		}
		sort.Slice(clr.factors, func(i, j int) bool { return clr.factors[i].key < clr.factors[j].key })
		mul := poly{clr.signature(): clr}
		num = expandCompound(num.mul(mul))
		den = expandCompound(den.mul(mul))
	}
	return cancel(num, den)
}

// cancel removes numeric content and common monomial factors, folds a
// numerator that is a scalar multiple of the denominator, and makes the
// leading denominator coefficient positive.
func cancel(num, den poly) (poly, poly) {
	if len(num) == 0 {
		return poly{}, polyConst(ratOne)
	}
	if c, ok := den.constant(); ok {
		return num.scale(new(big.Rat).Inv(c)), polyConst(ratOne)
	}

	// numeric content
	lcm := big.NewInt(1)
	for _, part := range []poly{num, den} {
		for _, m := range part {
			d := m.coeff.Denom()
			g := new(big.Int).GCD(nil, nil, lcm, d)
			lcm.Mul(lcm, new(big.Int).Quo(d, g))
		}
	}
	gcd := new(big.Int)
	for _, part := range []poly{num, den} {
		for _, m := range part {
			v := new(big.Int).Mul(new(big.Int).Quo(lcm, m.coeff.Denom()), m.coeff.Num())
			gcd.GCD(nil, nil, gcd, new(big.Int).Abs(v))
		}
	}
	if gcd.Sign() != 0 {
		s := new(big.Rat).SetFrac(lcm, gcd)
		num, den = num.scale(s), den.scale(s)
	}

	// common monomial factor of num and den together
	all := poly{}
	for i, part := range []poly{num, den} {
		for sig, m := range part {
			all[string(rune('n'+i))+sig] = m
		}
	}
	if common := commonFactor(all); len(common.factors) > 0 {
		inv := monoPow(common, ratNegOne)
		num, den = num.mul(inv), den.mul(inv)
	}

	// numerator proportional to denominator
	if len(num) == len(den) {
		var ratio *big.Rat
		same := true
		for sig, m := range num {
			d, ok := den[sig]
			if !ok {
				same = false
				break
			}
			r := new(big.Rat).Quo(m.coeff, d.coeff)
			if ratio == nil {
				ratio = r
			} else if ratio.Cmp(r) != 0 {
				same = false
				break
			}
		}
		if same && ratio != nil {
			return polyConst(ratio), polyConst(ratOne)
		}
	}

	if den.sorted()[0].coeff.Sign() < 0 {
		num, den = num.scale(ratNegOne), den.scale(ratNegOne)
	}
	return num, den
}

// ============================================================
// Public normalisation API
// ============================================================

// Expand distributes products and integer powers into a canonical sum of
// monomials.
func Expand(e Expr) Expr { return canonical(e) }

// TrigSimplify expands e and replaces every sin(u)^k with k >= 2 using
// sin² = 1 − cos².
func TrigSimplify(e Expr) Expr { return fromPoly(trigReduce(toPoly(e))) }

// Together writes e as a single fraction num/den in lowest terms.
func Together(e Expr) (num, den Expr) {
	n, d := together(toPoly(e))
	return fromPoly(n), fromPoly(d)
}

// Simplify is the full canonicalisation: trigonometric reduction followed by
// a single reduced fraction.
func Simplify(e Expr) Expr {
	n, d := rationalTrig(e)
	return fraction(fromPoly(n), fromPoly(d))
}

func rationalTrig(e Expr) (poly, poly) {
	n, d := together(trigReduce(toPoly(e)))
	return cancel(trigReduce(n), trigReduce(d))
}

func fraction(num, den Expr) Expr {
	if isNumEqual(den, 1) {
		return num
	}
	if dn, ok := den.(*Num); ok {
		return MulOf(&Num{val: new(big.Rat).Inv(dn.val)}, num)
	}
	return MulOf(num, PowOf(den, N(-1)))
}

// IsZero reports whether e is identically zero.
func IsZero(e Expr) bool {
	n, _ := rationalTrig(e)
	return len(n) == 0
}

// Equivalent reports whether a and b are equal as functions of their symbols.
func Equivalent(a, b Expr) bool {
	return IsZero(AddOf(a, MulOf(N(-1), b)))
}

// Terms counts the additive terms of the expanded form of e.
func Terms(e Expr) int {
	p := toPoly(e)
	if len(p) == 0 {
		return 1
	}
	return len(p)
}
