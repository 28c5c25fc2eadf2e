package airy

import (
	"errors"
	"fmt"
	"math"

	"github.com/njchilds90/airy/gosymbol"
)

// Vessel is a thick-walled cylinder with inner radius Inner, outer radius
// Outer, internal pressure PIn and external pressure POut. Fields are exact
// numbers or symbols.
type Vessel struct {
	Inner, Outer gosymbol.Expr
	PIn, POut    gosymbol.Expr
}

// SymbolicVessel uses the symbols a, b, p_in and p_out.
func SymbolicVessel() Vessel {
	return Vessel{
		Inner: gosymbol.S("a"),
		Outer: gosymbol.S("b"),
		PIn:   gosymbol.S("p_in"),
		POut:  gosymbol.S("p_out"),
	}
}

// NewVessel builds a numeric vessel. Values are converted exactly.
func NewVessel(inner, outer, pIn, pOut float64) (Vessel, error) {
	for _, v := range []float64{inner, outer, pIn, pOut} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Vessel{}, opErr("vessel", KindInvalidInput, fmt.Errorf("non-finite parameter: %w", ErrInvalidInput))
		}
	}
	v := Vessel{
		Inner: gosymbol.NFloat(inner),
		Outer: gosymbol.NFloat(outer),
		PIn:   gosymbol.NFloat(pIn),
		POut:  gosymbol.NFloat(pOut),
	}
	if err := v.Validate(); err != nil {
		return Vessel{}, err
	}
	return v, nil
}

// Validate checks numeric radii: both positive and Inner < Outer. Equal
// radii, symbolic or numeric, are degenerate.
func (v Vessel) Validate() error {
	if v.Inner == nil || v.Outer == nil || v.PIn == nil || v.POut == nil {
		return opErr("vessel", KindInvalidInput, fmt.Errorf("missing parameter: %w", ErrInvalidInput))
	}
	if gosymbol.Equivalent(v.Inner, v.Outer) {
		return opErr("vessel", KindGeometry, fmt.Errorf("inner radius equals outer radius: %w", ErrDegenerateGeometry))
	}
	a, aok := v.Inner.(*gosymbol.Num)
	b, bok := v.Outer.(*gosymbol.Num)
	if (aok && !a.IsPositive()) || (bok && !b.IsPositive()) {
		return opErr("vessel", KindGeometry, fmt.Errorf("radii must be positive: %w", ErrDegenerateGeometry))
	}
	if aok && bok && a.Rat().Cmp(b.Rat()) > 0 {
		return opErr("vessel", KindInvalidInput, fmt.Errorf("inner radius %s exceeds outer radius %s: %w", a, b, ErrInvalidInput))
	}
	return nil
}

// IsNumeric reports whether every parameter is an exact number.
func (v Vessel) IsNumeric() bool {
	for _, e := range []gosymbol.Expr{v.Inner, v.Outer, v.PIn, v.POut} {
		if _, ok := e.(*gosymbol.Num); !ok {
			return false
		}
	}
	return true
}

// VesselSolution is the Lamé solution of a Vessel.
type VesselSolution struct {
	Vessel Vessel
	A, C   gosymbol.Expr
	Stress PolarStress // in r
	polar  Polar
}

// SolveVessel imposes σrr(a) = −p_in and σrr(b) = −p_out on the hollow
// axisymmetric stress and solves for A and C by Cramer's rule:
//
//	A = a²b²(p_in − p_out)/(a² − b²)
//	C = (−a²p_in + b²p_out)/(2(a² − b²))
func (p Polar) SolveVessel(v Vessel) (*VesselSolution, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	axi, err := p.AxisymmetricStress()
	if err != nil {
		return nil, err
	}
	hollow, err := Hollow.Apply(axi)
	if err != nil {
		return nil, err
	}

	r := p.R.Name()
	eqs := []*gosymbol.Equation{
		gosymbol.Eq(hollow.RR.Sub(r, v.Inner), gosymbol.MulOf(gosymbol.N(-1), v.PIn)),
		gosymbol.Eq(hollow.RR.Sub(r, v.Outer), gosymbol.MulOf(gosymbol.N(-1), v.POut)),
	}
	sol, err := gosymbol.SolveLinearSystem(eqs, []string{ConstA.Name(), ConstC.Name()})
	if err != nil {
		if errors.Is(err, gosymbol.ErrSingularSystem) {
			return nil, opErr("vessel", KindGeometry, fmt.Errorf("%v: %w", err, ErrDegenerateGeometry))
		}
		return nil, opErr("vessel", KindSolver, err)
	}

	stress, err := hollow.Specialize(map[string]gosymbol.Expr{
		ConstA.Name(): sol[ConstA.Name()],
		ConstC.Name(): sol[ConstC.Name()],
	})
	if err != nil {
		return nil, err
	}
	return &VesselSolution{
		Vessel: v,
		A:      sol[ConstA.Name()],
		C:      sol[ConstC.Name()],
		Stress: stress.Map(gosymbol.Simplify),
		polar:  p,
	}, nil
}

// ExactAt evaluates the stresses at radius rv without rounding. A numeric
// rv must be positive.
func (s *VesselSolution) ExactAt(rv gosymbol.Expr) (PolarStress, error) {
	if n, ok := rv.(*gosymbol.Num); ok && !n.IsPositive() {
		return PolarStress{}, opErr("vessel_exact_at", KindInvalidInput, fmt.Errorf("radius %s: %w", n, ErrInvalidInput))
	}
	r := s.polar.R.Name()
	var out [3]gosymbol.Expr
	for i, c := range []gosymbol.Expr{s.Stress.RR, s.Stress.TT, s.Stress.RT} {
		if _, ok := gosymbol.FreeSymbols(c)[r]; !ok {
			out[i] = c
			continue
		}
		e, err := gosymbol.Subs(c, map[string]gosymbol.Expr{r: rv})
		if err != nil {
			return PolarStress{}, opErr("vessel_exact_at", KindInvalidInput, err)
		}
		out[i] = gosymbol.Simplify(e)
	}
	return PolarStress{RR: out[0], TT: out[1], RT: out[2]}, nil
}

// StressPoint is a numeric sample of the stress state.
type StressPoint struct {
	R        float64 `json:"r" yaml:"r"`
	RR       float64 `json:"sigma_rr" yaml:"sigma_rr"`
	TT       float64 `json:"sigma_thetatheta" yaml:"sigma_thetatheta"`
	RT       float64 `json:"sigma_rtheta" yaml:"sigma_rtheta"`
	Sigma1   float64 `json:"sigma_1" yaml:"sigma_1"`
	Sigma2   float64 `json:"sigma_2" yaml:"sigma_2"`
	VonMises float64 `json:"von_mises" yaml:"von_mises"`
}

// At evaluates the stresses at radius rv. Symbolic parameters must be bound
// in env.
func (s *VesselSolution) At(rv float64, env map[string]float64) (StressPoint, error) {
	if !(rv > 0) || math.IsInf(rv, 0) {
		return StressPoint{}, opErr("vessel_at", KindInvalidInput, fmt.Errorf("radius %g: %w", rv, ErrInvalidInput))
	}
	free := map[string]struct{}{}
	for _, c := range []gosymbol.Expr{s.Stress.RR, s.Stress.TT, s.Stress.RT} {
		for name := range gosymbol.FreeSymbols(c) {
			free[name] = struct{}{}
		}
	}
	vals := map[string]float64{s.polar.R.Name(): rv}
	for k, v := range env {
		if _, ok := free[k]; !ok || k == s.polar.R.Name() {
			return StressPoint{}, opErr("vessel_at", KindInvalidInput, fmt.Errorf("env %q: %w", k, gosymbol.ErrUndefinedSymbol))
		}
		vals[k] = v
	}
	var out [3]float64
	for i, c := range []gosymbol.Expr{s.Stress.RR, s.Stress.TT, s.Stress.RT} {
		f, err := gosymbol.EvalFloat(c, vals)
		if err != nil {
			return StressPoint{}, opErr("vessel_at", KindInvalidInput, err)
		}
		out[i] = f
	}
	s1, s2, err := PrincipalStresses(out[0], out[1], out[2])
	if err != nil {
		return StressPoint{}, err
	}
	return StressPoint{
		R: rv, RR: out[0], TT: out[1], RT: out[2],
		Sigma1: s1, Sigma2: s2, VonMises: VonMises(s1, s2),
	}, nil
}

// MaxSamples bounds the number of radii Sample evaluates.
const MaxSamples = 10000

// Sample evaluates n evenly spaced radii from Inner to Outer. The vessel
// must be numeric.
func (s *VesselSolution) Sample(n int) ([]StressPoint, error) {
	if n < 2 || n > MaxSamples {
		return nil, opErr("vessel_sample", KindInvalidInput, fmt.Errorf("samples must be in [2, %d], got %d: %w", MaxSamples, n, ErrInvalidInput))
	}
	a, aok := s.Vessel.Inner.(*gosymbol.Num)
	b, bok := s.Vessel.Outer.(*gosymbol.Num)
	if !aok || !bok {
		return nil, opErr("vessel_sample", KindInvalidInput, fmt.Errorf("symbolic radii: %w", ErrInvalidInput))
	}
	lo, hi := a.Float64(), b.Float64()
	out := make([]StressPoint, n)
	for i := range out {
		rv := lo + (hi-lo)*float64(i)/float64(n-1)
		pt, err := s.At(rv, nil)
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}
