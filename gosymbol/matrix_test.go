package gosymbol_test

import (
	"testing"

	"github.com/njchilds90/airy/gosymbol"
)

func TestMatrix_Det2x2(t *testing.T) {
	a, b, c, d := gosymbol.S("a"), gosymbol.S("b"), gosymbol.S("c"), gosymbol.S("d")
	m := gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{a, b, c, d})
	want := gosymbol.AddOf(gosymbol.MulOf(a, d), neg(gosymbol.MulOf(b, c)))
	if !gosymbol.Equivalent(m.Det(), want) {
		t.Errorf("want %s, got %s", want, m.Det())
	}
}

func TestMatrix_Det3x3(t *testing.T) {
	m := gosymbol.MatrixFromSlice(3, 3, []gosymbol.Expr{
		gosymbol.N(2), gosymbol.N(0), gosymbol.N(1),
		gosymbol.N(1), gosymbol.N(3), gosymbol.N(2),
		gosymbol.N(1), gosymbol.N(1), gosymbol.N(1),
	})
	// 2(3−2) − 0 + 1(1−3) = 0
	if got := m.Det(); got.String() != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestMatrix_RotationIsOrthogonal(t *testing.T) {
	q := gosymbol.Rotation2D(theta)
	if !q.MatMul(q.Transpose()).Equivalent(gosymbol.Identity(2)) {
		t.Errorf("want Q Qᵀ = I, got %s", q.MatMul(q.Transpose()))
	}
	if !gosymbol.Equivalent(q.Det(), gosymbol.N(1)) {
		t.Errorf("want det Q = 1, got %s", q.Det())
	}
}

func TestMatrix_RotationPreservesTrace(t *testing.T) {
	sxx, syy, sxy := gosymbol.S("sxx"), gosymbol.S("syy"), gosymbol.S("sxy")
	s := gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{sxx, sxy, sxy, syy})
	q := gosymbol.Rotation2D(theta)
	rot := q.MatMul(s).MatMul(q.Transpose())
	if !gosymbol.Equivalent(rot.Trace(), s.Trace()) {
		t.Errorf("want trace %s, got %s", s.Trace(), rot.Trace())
	}
	if !gosymbol.Equivalent(rot.Det(), s.Det()) {
		t.Errorf("want det %s, got %s", s.Det(), rot.Det())
	}
}

func TestMatrix_RotatedTensorIsSymmetric(t *testing.T) {
	sxx, syy, sxy := gosymbol.S("sxx"), gosymbol.S("syy"), gosymbol.S("sxy")
	s := gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{sxx, sxy, sxy, syy})
	q := gosymbol.Rotation2D(theta)
	rot := q.MatMul(s).MatMul(q.Transpose())
	skew := rot.MatAdd(rot.Transpose().Scale(gosymbol.N(-1)))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !gosymbol.IsZero(skew.Get(i, j)) {
				t.Errorf("skew[%d][%d]: want 0, got %s", i, j, skew.Get(i, j))
			}
		}
	}

	sum := s.MatAdd(s.Scale(gosymbol.N(2)))
	if !gosymbol.Equivalent(sum.Get(0, 1), gosymbol.MulOf(gosymbol.N(3), sxy)) {
		t.Errorf("want 3 sxy, got %s", sum.Get(0, 1))
	}
}

func TestMatrix_ApplySub(t *testing.T) {
	m := gosymbol.MatrixFromSlice(1, 2, []gosymbol.Expr{x, gosymbol.MulOf(gosymbol.N(2), x)})
	got := m.ApplySub("x", gosymbol.N(3))
	if got.String() != "[[3, 6]]" {
		t.Errorf("want [[3, 6]], got %s", got)
	}
}

func TestMatrix_LaTeX(t *testing.T) {
	got := gosymbol.Identity(2).LaTeX()
	want := `\begin{pmatrix}1 & 0 \\ 0 & 1\end{pmatrix}`
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}
