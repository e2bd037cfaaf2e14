// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mthermo

import (
	"math"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
)

// ConstCp implements a calorically perfect thermodynamic database with
// constant cp/R per species:
//
//   h(T) = hf + cp (T - Tstd)
//   s(T,P)/R = s0 + cp/R ln(T/Tstd) - ln(P/Pstd)
//
type ConstCp struct {
	cpr      []float64 // per-species cp/R
	hfr      []float64 // per-species formation enthalpy over R [K]
	s0r      []float64 // per-species standard entropy over R
	electron []bool    // per-species electron flag
}

// add model to factory
func init() {
	allocators["constcp"] = func() Model { return new(ConstCp) }
}

// Init initialises this structure
func (o *ConstCp) Init(recs []*inp.SpecRecord) (err error) {
	ns := len(recs)
	o.cpr = make([]float64, ns)
	o.hfr = make([]float64, ns)
	o.s0r = make([]float64, ns)
	o.electron = make([]bool, ns)
	for i, r := range recs {
		if r.CpR <= 0 {
			return chk.Err("species %q has no constant-cp data (cpr=%v)", r.Name, r.CpR)
		}
		o.cpr[i] = r.CpR
		o.hfr[i] = r.HfR
		o.s0r[i] = r.S0R
		o.electron[i] = r.IsElectron()
	}
	return
}

// StandardT returns the standard-state temperature
func (o *ConstCp) StandardT() float64 { return 298.15 }

// StandardP returns the standard-state pressure
func (o *ConstCp) StandardP() float64 { return 101325.0 }

// tgov returns the governing temperature of species i
func (o *ConstCp) tgov(i int, ts Temps) float64 {
	if o.electron[i] {
		return ts.Te
	}
	return ts.T
}

// CpR computes cp/R
func (o *ConstCp) CpR(ts Temps, cp []float64) {
	for i := range o.cpr {
		cp[i] = o.cpr[i]
	}
}

// HRT computes h/RT
func (o *ConstCp) HRT(ts Temps, h []float64) {
	for i := range o.cpr {
		T := o.tgov(i, ts)
		h[i] = (o.hfr[i] + o.cpr[i]*(T-o.StandardT())) / T
	}
}

// SR computes s/R at pressure P
func (o *ConstCp) SR(ts Temps, P float64, s []float64) {
	lnp := math.Log(P / o.StandardP())
	for i := range o.cpr {
		T := o.tgov(i, ts)
		s[i] = o.s0r[i] + o.cpr[i]*math.Log(T/o.StandardT()) - lnp
	}
}

// GRT computes g/RT = h/RT - s/R
func (o *ConstCp) GRT(ts Temps, P float64, g []float64) {
	lnp := math.Log(P / o.StandardP())
	for i := range o.cpr {
		T := o.tgov(i, ts)
		h := (o.hfr[i] + o.cpr[i]*(T-o.StandardT())) / T
		s := o.s0r[i] + o.cpr[i]*math.Log(T/o.StandardT()) - lnp
		g[i] = h - s
	}
}
