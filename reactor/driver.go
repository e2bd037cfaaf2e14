// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactor

import (
	"github.com/cpmech/gochem/kinetics"
	"github.com/cpmech/gochem/thermo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// State holds the composition of the reactor at one output station
type State struct {
	Time float64   // time
	C    []float64 // species concentrations [mol/m³]
}

// GetCopy returns a copy of this state
func (o State) GetCopy() *State {
	return &State{o.Time, append([]float64(nil), o.C...)}
}

// Driver integrates the species concentrations of a constant-volume reactor
// held at a fixed temperature:
//
//	dc_i/dt = wdot_i / Mw_i
//
// where wdot are the net mass production rates of the reaction mechanism.
// The stiff system is solved with Radau5 using the analytic chemical
// Jacobian.
type Driver struct {

	// input
	Mix *thermo.Mixture    // mixture
	Kin *kinetics.Kinetics // closed reaction mechanism
	T   float64            // reactor temperature

	// settings
	Atol float64 // absolute tolerance
	Rtol float64 // relative tolerance

	// results
	Res []*State // composition at the requested output times

	// scratch
	sol   ode.Solver
	cwork []float64
	wdot  []float64
	jmat  [][]float64
}

// Init initialises the driver for one mixture, mechanism and temperature
func (o *Driver) Init(mix *thermo.Mixture, kin *kinetics.Kinetics, T float64) (err error) {
	if T <= 0 {
		return chk.Err("reactor temperature must be positive. T=%v is invalid", T)
	}
	o.Mix = mix
	o.Kin = kin
	o.T = T
	o.Atol = 1e-10
	o.Rtol = 1e-8

	// scratch
	ns := mix.Nspecies()
	o.cwork = make([]float64, ns)
	o.wdot = make([]float64, ns)
	o.jmat = la.MatAlloc(ns, ns)

	// ODE system with y := c. Tiny negative concentrations produced by the
	// integrator are clamped to zero before evaluating the mechanism.
	silent := true
	fcn := func(f []float64, dt, t float64, y []float64, args ...interface{}) (e error) {
		o.clamp(y)
		e = o.Kin.NetProductionRates(o.T, o.cwork, o.wdot)
		if e != nil {
			return
		}
		for i := 0; i < ns; i++ {
			f[i] = o.wdot[i] / o.Mix.SpeciesMw(i)
		}
		return
	}
	jac := func(dfdy *la.Triplet, dt, t float64, y []float64, args ...interface{}) (e error) {
		if dfdy.Max() == 0 {
			dfdy.Init(ns, ns, ns*ns)
		}
		o.clamp(y)
		e = o.Kin.Jacobian(o.T, o.cwork, o.jmat)
		if e != nil {
			return
		}
		dfdy.Start()
		for i := 0; i < ns; i++ {
			for k := 0; k < ns; k++ {
				dfdy.Put(i, k, o.jmat[i][k]/o.Mix.SpeciesMw(i))
			}
		}
		return
	}
	o.sol.Init("Radau5", ns, fcn, jac, nil, nil, silent)
	o.sol.SetTol(o.Atol, o.Rtol)
	o.sol.Distr = false // must be sure to disable this; otherwise it causes problems in parallel runs
	return
}

// clamp copies y into the concentration scratch vector, flooring at zero
func (o *Driver) clamp(y []float64) {
	for i, yi := range y {
		if yi < 0 {
			yi = 0
		}
		o.cwork[i] = yi
	}
}

// Run integrates the reactor from the initial concentrations c0 at time zero
// through the strictly increasing output times, storing one result state per
// output time
func (o *Driver) Run(c0 []float64, times []float64) (err error) {

	// check input
	ns := o.Mix.Nspecies()
	if len(c0) != ns {
		return chk.Err("size of initial concentrations vector is incorrect. %d != %d", len(c0), ns)
	}
	if len(times) < 1 {
		return chk.Err("at least one output time is required")
	}
	tprev := 0.0
	for k, tk := range times {
		if tk < tprev || (k > 0 && tk == tprev) {
			return chk.Err("output times must be non-negative and strictly increasing. times[%d]=%v is invalid", k, tk)
		}
		tprev = tk
	}
	for i, ci := range c0 {
		if ci < 0 {
			return chk.Err("initial concentration of species %q is negative: %v", o.Mix.SpeciesName(i), ci)
		}
	}

	// integrate between consecutive output stations
	o.sol.SetTol(o.Atol, o.Rtol)
	y := append([]float64(nil), c0...)
	o.Res = make([]*State, len(times))
	tprev = 0.0
	for k, tk := range times {
		if tk > tprev {
			err = o.sol.Solve(y, tprev, tk, tk-tprev, false)
			if err != nil {
				return chk.Err("reactor integration to t=%v failed: %v", tk, err)
			}
		}
		o.clamp(y)
		o.Res[k] = &State{tk, append([]float64(nil), o.cwork...)}
		tprev = tk
	}
	return
}

// Density computes the mass density corresponding to one result state
func (o *Driver) Density(s *State) (rho float64) {
	for i, ci := range s.C {
		rho += ci * o.Mix.SpeciesMw(i)
	}
	return
}
