package airy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PrincipalStresses returns the eigenvalues σ1 ≥ σ2 of the symmetric stress
// tensor [[sxx, sxy], [sxy, syy]].
func PrincipalStresses(sxx, syy, sxy float64) (s1, s2 float64, err error) {
	for _, v := range []float64{sxx, syy, sxy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, opErr("principal_stresses", KindInvalidInput, fmt.Errorf("non-finite component: %w", ErrInvalidInput))
		}
	}
	sym := mat.NewSymDense(2, []float64{sxx, sxy, sxy, syy})
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		return 0, 0, opErr("principal_stresses", KindSolver, fmt.Errorf("eigendecomposition failed: %w", ErrSolver))
	}
	vals := eig.Values(nil)
	return vals[1], vals[0], nil
}

// VonMises is the plane-stress equivalent stress of principal stresses s1, s2.
func VonMises(s1, s2 float64) float64 {
	return math.Sqrt(s1*s1 - s1*s2 + s2*s2)
}
