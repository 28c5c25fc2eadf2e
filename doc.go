// Package airy derives the plane-elasticity results of the Airy stress
// function in polar coordinates with the exact gosymbol kernel.
//
// The pipeline runs in order:
//   - chain-rule operators ∂/∂x, ∂/∂y written in (r, θ)
//   - the polar Laplacian and biharmonic operators
//   - rectangular and rotated polar stress components of φ(r, θ)
//   - the radial biharmonic Euler equation and its general solution
//   - the axisymmetric stress state and the Lamé pressure vessel
//
// Every symbolic result is exact. Floating point only appears in the
// sampling helpers (VesselSolution.At, Sample, PrincipalStresses).
package airy
