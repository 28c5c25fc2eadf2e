package airy

import (
	"context"
	"io"
	"log/slog"

	"github.com/njchilds90/airy/gosymbol"
)

// Step is one named result of a derivation.
type Step struct {
	Name  string        `json:"name" yaml:"name"`
	Title string        `json:"title" yaml:"title"`
	Note  string        `json:"note,omitempty" yaml:"note,omitempty"`
	Expr  gosymbol.Expr `json:"-" yaml:"-"`
	Text  string        `json:"expr" yaml:"expr"`
	LaTeX string        `json:"latex" yaml:"latex"`
	Terms int           `json:"terms" yaml:"terms"`
}

// Derivation is the ordered record of a full run.
type Derivation struct {
	Steps  []Step                 `json:"steps" yaml:"steps"`
	ODE    *gosymbol.ODESolution  `json:"-" yaml:"-"`
	Vessel *VesselSolution        `json:"-" yaml:"-"`
	Axi    PolarStress            `json:"-" yaml:"-"`
	Meta   map[string]interface{} `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Step returns the step with the given name.
func (d *Derivation) Step(name string) (Step, bool) {
	for _, s := range d.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Options configures Derive.
type Options struct {
	Logger *slog.Logger
	// Vessel defaults to SymbolicVessel.
	Vessel *Vessel
	// IncludeRaw adds the unsimplified biharmonic operator, which is slow.
	IncludeRaw bool
}

type recorder struct {
	ctx context.Context
	log *slog.Logger
	d   *Derivation
}

func (rec *recorder) add(name, title, note string, e gosymbol.Expr) error {
	if err := rec.ctx.Err(); err != nil {
		return err
	}
	st := Step{
		Name:  name,
		Title: title,
		Note:  note,
		Expr:  e,
		Text:  e.String(),
		LaTeX: e.LaTeX(),
		Terms: gosymbol.Terms(e),
	}
	rec.d.Steps = append(rec.d.Steps, st)
	rec.log.Debug("derive.step", "name", name, "terms", st.Terms)
	return nil
}

// Derive runs the full sequence: operators, Laplacian, biharmonic, stress
// field, radial solution, axisymmetric specialisation and the pressure
// vessel.
func Derive(ctx context.Context, opts Options) (*Derivation, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := NewPolar()
	phi := p.Phi()
	rec := &recorder{ctx: ctx, log: log, d: &Derivation{Meta: map[string]interface{}{}}}
	log.Info("derive.start", "include_raw", opts.IncludeRaw)

	if err := rec.add("dx", "∂φ/∂x", "cos θ ∂/∂r − (sin θ/r) ∂/∂θ", p.Dx(phi)); err != nil {
		return nil, err
	}
	if err := rec.add("dy", "∂φ/∂y", "sin θ ∂/∂r + (cos θ/r) ∂/∂θ", p.Dy(phi)); err != nil {
		return nil, err
	}
	raw := p.RawLaplacian(phi)
	if err := rec.add("laplacian_raw", "∇²φ (expanded, unsimplified)", "", raw); err != nil {
		return nil, err
	}
	lap := gosymbol.Simplify(raw)
	if err := rec.add("laplacian", "∇²φ", "", lap); err != nil {
		return nil, err
	}
	if !gosymbol.Equivalent(lap, p.LaplacianForm(phi)) {
		return nil, opErr("laplacian", KindInvariant, ErrInvariantViolated)
	}
	if opts.IncludeRaw {
		rb := p.RawBiharmonic(phi)
		if err := rec.add("biharmonic_raw", "∇⁴φ (raw composition)", "", rb); err != nil {
			return nil, err
		}
	}
	bih := p.Laplacian(lap)
	if err := rec.add("biharmonic", "∇⁴φ", "simplified between compositions", bih); err != nil {
		return nil, err
	}

	rect := p.RectangularStress(phi)
	for _, c := range []NamedExpr{{"sigma_xx", rect.XX}, {"sigma_yy", rect.YY}, {"sigma_xy", rect.XY}} {
		if err := rec.add(c.Name, c.Name, "rectangular, in (r, θ)", c.Expr); err != nil {
			return nil, err
		}
	}
	polar, err := p.StressField(phi)
	if err != nil {
		return nil, err
	}
	for _, c := range polar.Components() {
		if err := rec.add(c.Name, c.Name, "Q σ Qᵀ", c.Expr); err != nil {
			return nil, err
		}
	}

	sol, err := p.SolveRadialBiharmonic()
	if err != nil {
		return nil, err
	}
	rec.d.ODE = sol
	if err := rec.add("radial_indicial", "indicial polynomial", "", sol.Indicial); err != nil {
		return nil, err
	}
	if err := rec.add("radial_general", "φ(r)", "general solution of ∇⁴φ(r) = 0", sol.General); err != nil {
		return nil, err
	}

	axi := p.stressOf(polar, p.AxisymmetricPotential())
	rec.d.Axi = axi
	for _, c := range axi.Components() {
		if err := rec.add("axisymmetric_"+c.Name, c.Name, "φ = A ln r + B r² ln r + C r² + D", c.Expr); err != nil {
			return nil, err
		}
	}
	for _, pol := range []Policy{Solid, Hollow} {
		s, err := pol.Apply(axi)
		if err != nil {
			return nil, err
		}
		for _, c := range s.Components()[:2] {
			if err := rec.add(pol.String()+"_"+c.Name, c.Name+" ("+pol.String()+")", "", c.Expr); err != nil {
				return nil, err
			}
		}
	}

	v := SymbolicVessel()
	if opts.Vessel != nil {
		v = *opts.Vessel
	}
	vs, err := p.SolveVessel(v)
	if err != nil {
		return nil, err
	}
	rec.d.Vessel = vs
	if err := rec.add("vessel_A", "A", "σrr(a) = −p_in, σrr(b) = −p_out", vs.A); err != nil {
		return nil, err
	}
	if err := rec.add("vessel_C", "C", "", vs.C); err != nil {
		return nil, err
	}
	for _, c := range vs.Stress.Components()[:2] {
		if err := rec.add("vessel_"+c.Name, c.Name+" (vessel)", "", c.Expr); err != nil {
			return nil, err
		}
	}
	rec.d.Meta["steps"] = len(rec.d.Steps)
	log.Info("derive.done", "steps", len(rec.d.Steps))
	return rec.d, nil
}
