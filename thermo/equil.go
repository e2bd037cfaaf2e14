// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// EquilSolver implements the element-potential (Gibbs function continuation)
// equilibrium solver. The unknowns are one Lagrange multiplier per element
// plus the log of the total species moles:
//
//   n_i = exp(Σ_j Em[i][j] λ_j + ν - g_i)
//
//   r_j = Σ_i Em[i][j] n_i - c_j   (elemental balance, j = 1..ne)
//   r_ν = Σ_i n_i - exp(ν)         (mole fraction normalization)
//
// where g_i = G_i/(Ru T) + ln(P/Pstd) is the dimensionless chemical potential
// of pure species i at (T, P). The Newton matrix is the bordered SPD system
// A_jk = Σ_i Em[i][j] Em[i][k] n_i and is handed to the sparse linear solver
// as a black box.
type EquilSolver struct {

	// constants
	MaxIt  int     // maximum number of Newton iterations
	Tol    float64 // convergence tolerance on ‖r‖∞
	StpMax float64 // cap on the Newton step ‖Δλ‖∞

	// mixture access
	mix *Mixture
	ns  int
	ne  int

	// work buffers, sized once
	g    []float64 // [ns] dimensionless chemical potentials
	n    []float64 // [ns] species moles
	ntmp []float64 // [ns] species moles during line search
	c    []float64 // [ne] normalized and floored elemental composition
	z    []float64 // [ne+1] unknowns: λ and ν
	ztmp []float64 // [ne+1] trial unknowns
	r    []float64 // [ne+1] residuals
	rhs  []float64 // [ne+1] right-hand side
	dz   []float64 // [ne+1] Newton step
	tri  la.Triplet
}

// newEquilSolver allocates an equilibrium solver attached to a mixture
func newEquilSolver(mix *Mixture) (o *EquilSolver) {
	o = new(EquilSolver)
	o.MaxIt = 200
	o.Tol = 1e-12
	o.StpMax = 50.0
	o.mix = mix
	o.ns = mix.Nspecies()
	o.ne = mix.Nelements()
	nx := o.ne + 1
	o.g = make([]float64, o.ns)
	o.n = make([]float64, o.ns)
	o.ntmp = make([]float64, o.ns)
	o.c = make([]float64, o.ne)
	o.z = make([]float64, nx)
	o.ztmp = make([]float64, nx)
	o.r = make([]float64, nx)
	o.rhs = make([]float64, nx)
	o.dz = make([]float64, nx)
	o.tri.Init(nx, nx, nx*nx)
	return
}

// expcap caps the exponent to keep exp finite
func expcap(a float64) float64 {
	if a > 200.0 {
		return 200.0
	}
	if a < -300.0 {
		return -300.0
	}
	return a
}

// moles computes n from the unknowns z = (λ, ν)
func (o *EquilSolver) moles(z, n []float64) {
	for i := 0; i < o.ns; i++ {
		a := z[o.ne] - o.g[i]
		for j := 0; j < o.ne; j++ {
			a += o.mix.Em[i][j] * z[j]
		}
		n[i] = math.Exp(expcap(a))
	}
}

// residual computes r from n and returns ‖r‖∞
func (o *EquilSolver) residual(z, n, r []float64) (rnorm float64) {
	for j := 0; j < o.ne; j++ {
		r[j] = -o.c[j]
		for i := 0; i < o.ns; i++ {
			r[j] += o.mix.Em[i][j] * n[i]
		}
	}
	r[o.ne] = -math.Exp(expcap(z[o.ne]))
	for i := 0; i < o.ns; i++ {
		r[o.ne] += n[i]
	}
	for k := 0; k < o.ne+1; k++ {
		rnorm = math.Max(rnorm, math.Abs(r[k]))
	}
	return
}

// Equilibrate computes the equilibrium mole fractions X at (T, P) for the
// elemental composition c (non-negative, positive sum; normalized
// internally). On non-convergence a descriptive error is returned and X is
// left untouched.
func (o *EquilSolver) Equilibrate(T, P float64, c []float64, X []float64) (err error) {

	// check input
	if T <= 0 || P <= 0 {
		return chk.Err("equilibrate needs positive temperature and pressure; got T=%v P=%v", T, P)
	}
	if len(c) != o.ne {
		return chk.Err("elemental composition has %d entries; mixture has %d elements", len(c), o.ne)
	}
	csum, cmax := 0.0, 0.0
	for j := 0; j < o.ne; j++ {
		if c[j] < 0 {
			return chk.Err("elemental composition of %q is negative: %v", o.mix.ElementName(j), c[j])
		}
		csum += c[j]
		cmax = math.Max(cmax, c[j])
	}
	if csum <= 0 {
		return chk.Err("elemental composition must have a positive sum")
	}

	// normalize and floor trace elements to keep the Newton matrix factorizable
	floor := 1e-30 * cmax / csum
	for j := 0; j < o.ne; j++ {
		o.c[j] = math.Max(c[j]/csum, floor)
	}

	// dimensionless chemical potentials at (T, P)
	o.mix.SpeciesGRTAt(T, o.mix.StandardP(), o.g)
	lnp := math.Log(P / o.mix.StandardP())
	for i := 0; i < o.ns; i++ {
		o.g[i] += lnp
	}

	// linear solver
	nx := o.ne + 1
	lis := la.GetSolver("umfpack")
	defer lis.Free()

	// initial potentials: regularized least-squares fit of
	// Em·λ + ν ≈ g + ln(1/ns), putting all species moles near 1/ns
	lnn0 := math.Log(1.0 / float64(o.ns))
	o.tri.Start()
	for j := 0; j < nx; j++ {
		o.rhs[j] = 0
		for k := 0; k < nx; k++ {
			ajk := 0.0
			for i := 0; i < o.ns; i++ {
				bij, bik := 1.0, 1.0
				if j < o.ne {
					bij = o.mix.Em[i][j]
				}
				if k < o.ne {
					bik = o.mix.Em[i][k]
				}
				ajk += bij * bik
			}
			if j == k {
				ajk += 1e-10
			}
			o.tri.Put(j, k, ajk)
		}
		for i := 0; i < o.ns; i++ {
			bij := 1.0
			if j < o.ne {
				bij = o.mix.Em[i][j]
			}
			o.rhs[j] += bij * (o.g[i] + lnn0)
		}
	}
	err = lis.InitR(&o.tri, false, false, false)
	if err != nil {
		return chk.Err("equilibrate: linear solver initialisation failed:\n%v", err)
	}
	err = lis.Fact()
	if err != nil {
		return chk.Err("equilibrate: factorization of initial-guess system failed:\n%v", err)
	}
	err = lis.SolveR(o.z, o.rhs, false)
	if err != nil {
		return chk.Err("equilibrate: solution of initial-guess system failed:\n%v", err)
	}

	// Newton iterations on (λ, ν)
	o.moles(o.z, o.n)
	rnorm := o.residual(o.z, o.n, o.r)
	it := 0
	for ; it < o.MaxIt; it++ {
		if rnorm < o.Tol {
			break
		}

		// assemble bordered Newton matrix
		o.tri.Start()
		for j := 0; j < nx; j++ {
			for k := 0; k < nx; k++ {
				ajk := 0.0
				for i := 0; i < o.ns; i++ {
					bij, bik := 1.0, 1.0
					if j < o.ne {
						bij = o.mix.Em[i][j]
					}
					if k < o.ne {
						bik = o.mix.Em[i][k]
					}
					ajk += bij * bik * o.n[i]
				}
				if j == o.ne && k == o.ne {
					ajk -= math.Exp(expcap(o.z[o.ne]))
				}
				if j == k {
					ajk += 1e-14 * (1.0 + math.Abs(ajk))
				}
				o.tri.Put(j, k, ajk)
			}
			o.rhs[j] = -o.r[j]
		}

		// solve for the Newton step
		err = lis.Fact()
		if err != nil {
			return chk.Err("equilibrate: factorization failed at iteration %d (T=%v, P=%v):\n%v", it, T, P, err)
		}
		err = lis.SolveR(o.dz, o.rhs, false)
		if err != nil {
			return chk.Err("equilibrate: linear solution failed at iteration %d (T=%v, P=%v):\n%v", it, T, P, err)
		}

		// cap the step
		dmax := 0.0
		for k := 0; k < nx; k++ {
			dmax = math.Max(dmax, math.Abs(o.dz[k]))
		}
		s := 1.0
		if dmax > o.StpMax {
			s = o.StpMax / dmax
		}

		// damped update with halving line search on ‖r‖∞
		accepted := false
		for cut := 0; cut < 25; cut++ {
			for k := 0; k < nx; k++ {
				o.ztmp[k] = o.z[k] + s*o.dz[k]
			}
			o.moles(o.ztmp, o.ntmp)
			rnew := o.residual(o.ztmp, o.ntmp, o.r)
			if rnew < rnorm || rnew < o.Tol {
				copy(o.z, o.ztmp)
				copy(o.n, o.ntmp)
				rnorm = rnew
				accepted = true
				break
			}
			s /= 2.0
		}
		if !accepted {
			// keep the smallest step; stalling here ends in the
			// non-convergence error below
			copy(o.z, o.ztmp)
			copy(o.n, o.ntmp)
			rnorm = o.residual(o.z, o.n, o.r)
		}
	}

	// check convergence
	if rnorm >= o.Tol {
		return chk.Err("equilibrate did not converge after %d iterations (T=%v, P=%v, ‖r‖∞=%v)", it, T, P, rnorm)
	}

	// mole fractions
	sum := 0.0
	for i := 0; i < o.ns; i++ {
		sum += o.n[i]
	}
	for i := 0; i < o.ns; i++ {
		X[i] = o.n[i] / sum
	}
	return
}
