package airy

import "github.com/njchilds90/airy/gosymbol"

// RawLaplacian is ∂²f/∂x² + ∂²f/∂y² expanded without trigonometric
// reduction.
func (p Polar) RawLaplacian(f gosymbol.Expr) gosymbol.Expr {
	return gosymbol.Expand(gosymbol.AddOf(p.Dxx(f), p.Dyy(f)))
}

// Laplacian is the simplified polar Laplacian, f_rr + f_r/r + f_θθ/r².
func (p Polar) Laplacian(f gosymbol.Expr) gosymbol.Expr {
	return gosymbol.Simplify(p.RawLaplacian(f))
}

// Biharmonic is ∇⁴f = ∇²(∇²f), simplified after each Laplacian.
func (p Polar) Biharmonic(f gosymbol.Expr) gosymbol.Expr {
	return p.Laplacian(p.Laplacian(f))
}

// RawBiharmonic composes the raw Laplacian with itself. It is only used to
// show how large the unsimplified operator grows.
func (p Polar) RawBiharmonic(f gosymbol.Expr) gosymbol.Expr {
	return p.RawLaplacian(p.RawLaplacian(f))
}

// LaplacianForm is f_rr + f_r/r + f_θθ/r² for an undefined f(r, θ).
func (p Polar) LaplacianForm(f *gosymbol.Function) gosymbol.Expr {
	r, th := p.R.Name(), p.Theta.Name()
	return gosymbol.AddOf(
		f.Derivative(r, 2),
		gosymbol.MulOf(gosymbol.PowOf(p.R, gosymbol.N(-1)), f.Derivative(r, 1)),
		gosymbol.MulOf(gosymbol.PowOf(p.R, gosymbol.N(-2)), f.Derivative(th, 2)),
	)
}

// BiharmonicForm is the expanded closed form of ∇⁴f:
//
//	(r⁴f_rrrr + 2r³f_rrr − r²f_rr + 2r²f_rrθθ + r f_r − 2r f_rθθ + 4f_θθ + f_θθθθ) / r⁴
func (p Polar) BiharmonicForm(f *gosymbol.Function) gosymbol.Expr {
	r, th := p.R.Name(), p.Theta.Name()
	rp := func(k int64) gosymbol.Expr { return gosymbol.PowOf(p.R, gosymbol.N(k)) }
	mixed := func(nr, nth int) gosymbol.Expr {
		return gosymbol.DiffN(gosymbol.DiffN(f, r, nr), th, nth)
	}
	num := gosymbol.AddOf(
		gosymbol.MulOf(rp(4), mixed(4, 0)),
		gosymbol.MulOf(gosymbol.N(2), rp(3), mixed(3, 0)),
		gosymbol.MulOf(gosymbol.N(-1), rp(2), mixed(2, 0)),
		gosymbol.MulOf(gosymbol.N(2), rp(2), mixed(2, 2)),
		gosymbol.MulOf(p.R, mixed(1, 0)),
		gosymbol.MulOf(gosymbol.N(-2), p.R, mixed(1, 2)),
		gosymbol.MulOf(gosymbol.N(4), mixed(0, 2)),
		mixed(0, 4),
	)
	return gosymbol.MulOf(num, rp(-4))
}
