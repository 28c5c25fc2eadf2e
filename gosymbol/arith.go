package gosymbol

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds numbers and merges terms that differ
// only by a numeric coefficient.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	coeffs := map[string]*Num{}
	rests := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := extractCoefficient(t)
		key := rest.exprType() + ":" + rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			rests[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}
	sort.Strings(order)
	result := []Expr{}
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, rests[key])
		} else {
			result = append(result, MulOf(coeff, rests[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds numbers and merges equal bases by
// adding their exponents.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	exps := map[string][]Expr{}
	bases := map[string]Expr{}
	order := []string{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.exprType() + ":" + base.String()
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = base
		}
		exps[key] = append(exps[key], exp)
	}
	if coeff.IsZero() {
		return N(0)
	}

	others := []Expr{}
	for _, key := range order {
		var merged Expr
		if len(exps[key]) == 1 {
			merged = PowOf(bases[key], exps[key][0])
		} else {
			merged = PowOf(bases[key], AddOf(exps[key]...))
		}
		if v, ok := merged.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		others = append(others, merged)
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sortedOthers := make([]Expr, len(ks))
	for i := range ks {
		sortedOthers[i] = ks[i].e
	}
	others = sortedOthers

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// splitFraction separates factors with a negative numeric exponent into a
// denominator. The leading numeric coefficient, if any, is returned apart.
func (m *Mul) splitFraction() (coeff *Num, num, den []Expr) {
	coeff = N(1)
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
			continue
		case *Pow:
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				den = append(den, PowOf(v.base, numNeg(en)))
				continue
			}
		}
		num = append(num, f)
	}
	return coeff, num, den
}

func wrapString(e Expr) string {
	switch e.(type) {
	case *Add, *Mul:
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	coeff, num, den := m.splitFraction()
	parts := make([]string, 0, len(num)+1)
	sign := ""
	switch {
	case coeff.IsNegOne() && len(num) > 0:
		sign = "-"
	case coeff.IsNegative() && coeff.IsInteger():
		sign = "-"
		parts = append(parts, numNeg(coeff).String())
	case !coeff.IsOne() || len(num) == 0:
		parts = append(parts, coeff.String())
	}
	for _, f := range num {
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "("+f.String()+")")
		} else {
			parts = append(parts, f.String())
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "1")
	}
	out := sign + strings.Join(parts, "*")
	if len(den) == 0 {
		return out
	}
	if len(den) == 1 {
		return out + "/" + wrapString(den[0])
	}
	dparts := make([]string, len(den))
	for i, d := range den {
		dparts[i] = wrapString(d)
	}
	return out + "/(" + strings.Join(dparts, "*") + ")"
}

func (m *Mul) LaTeX() string {
	coeff, num, den := m.splitFraction()
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	latexJoin := func(fs []Expr, lead *big.Int) string {
		parts := []string{}
		if lead.Cmp(big.NewInt(1)) != 0 {
			parts = append(parts, lead.String())
		}
		multi := len(parts)+len(fs) > 1
		for _, f := range fs {
			if _, isAdd := f.(*Add); isAdd && multi {
				parts = append(parts, "\\left("+f.LaTeX()+"\\right)")
			} else {
				parts = append(parts, f.LaTeX())
			}
		}
		if len(parts) == 0 {
			return "1"
		}
		return strings.Join(parts, " ")
	}
	top, bottom := coeff.val.Num(), coeff.val.Denom()
	if len(den) == 0 && coeff.IsInteger() {
		return sign + latexJoin(num, top)
	}
	return sign + "\\frac{" + latexJoin(num, top) + "}{" + latexJoin(den, bottom) + "}"
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }

// extractCoefficient splits a leading numeric factor from a product.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// maxExactPower bounds integer powers of numbers folded during simplification.
const maxExactPower = 256

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	// 0^negative is a division by zero and stays visible for Subs to report.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if expIsNum && en.IsNegative() {
			return &Pow{base: base, exp: exp}
		}
		return N(0)
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok && expIsNum && en.IsInteger() {
		if e := en.val.Num(); e.IsInt64() && e.Int64() <= maxExactPower && e.Int64() >= -maxExactPower {
			return &Num{val: ratPowInt(bn.val, e.Int64())}
		}
	}
	if expIsNum && en.IsInteger() {
		switch inner := base.(type) {
		case *Pow:
			return PowOf(inner.base, MulOf(inner.exp, exp))
		case *Mul:
			fs := make([]Expr, len(inner.factors))
			for i, f := range inner.factors {
				fs[i] = PowOf(f, exp)
			}
			return MulOf(fs...)
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	}
	if en, ok := p.exp.(*Num); ok && !en.IsInteger() {
		expStr = "(" + expStr + ")"
	}
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.IsNegative() {
		return "\\frac{1}{" + PowOf(p.base, numNeg(en)).LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	expStr := p.exp.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	case *Func:
		// sin^2(θ) style
		f := p.base.(*Func)
		if f.name != "ln" && f.name != "exp" {
			return "\\" + f.name + "^{" + expStr + "}\\left(" + f.arg.LaTeX() + "\\right)"
		}
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + expStr + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	_, expIsNum := p.exp.(*Num)
	if expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	_, baseIsNum := p.base.(*Num)
	if baseIsNum {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

// Eval is exact: only integer powers of numbers evaluate.
func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 || !e.IsInteger() {
		return nil, false
	}
	if b.IsZero() && e.IsNegative() {
		return nil, false
	}
	ev := e.val.Num()
	if !ev.IsInt64() || ev.Int64() > maxExactPower || ev.Int64() < -maxExactPower {
		return nil, false
	}
	return &Num{val: ratPowInt(b.val, ev.Int64())}, true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// divByZero reports whether e contains an exact zero raised to a negative power.
func divByZero(e Expr) bool {
	switch v := e.(type) {
	case *Pow:
		if bn, ok := v.base.(*Num); ok && bn.IsZero() {
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				return true
			}
		}
		return divByZero(v.base) || divByZero(v.exp)
	case *Add:
		for _, t := range v.terms {
			if divByZero(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if divByZero(f) {
				return true
			}
		}
	case *Func:
		return divByZero(v.arg)
	}
	return false
}

func mustInt64(r *big.Rat) int64 {
	if !r.IsInt() || !r.Num().IsInt64() {
		panic(fmt.Sprintf("gosymbol: %s is not a machine integer", r.RatString()))
	}
	return r.Num().Int64()
}
