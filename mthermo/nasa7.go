// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mthermo

import (
	"math"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
)

// Nasa7 implements the thermodynamic database based on two-range
// 7-coefficient polynomials:
//
//   cp/R = a1 + a2 T + a3 T² + a4 T³ + a5 T⁴
//   h/RT = a1 + a2/2 T + a3/3 T² + a4/4 T³ + a5/5 T⁴ + a6/T
//   s°/R = a1 ln(T) + a2 T + a3/2 T² + a4/3 T³ + a5/4 T⁴ + a7
//
// with s/R = s°/R - ln(P/Pstd) for the partial pressure correction.
type Nasa7 struct {
	polys    []*inp.Nasa7 // per-species polynomial data
	electron []bool       // per-species electron flag
}

// add model to factory
func init() {
	allocators["nasa7"] = func() Model { return new(Nasa7) }
}

// Init initialises this structure
func (o *Nasa7) Init(recs []*inp.SpecRecord) (err error) {
	o.polys = make([]*inp.Nasa7, len(recs))
	o.electron = make([]bool, len(recs))
	for i, r := range recs {
		if r.Poly == nil {
			return chk.Err("species %q has no nasa7 polynomial data", r.Name)
		}
		o.polys[i] = r.Poly
		o.electron[i] = r.IsElectron()
	}
	return
}

// StandardT returns the standard-state temperature
func (o *Nasa7) StandardT() float64 { return 298.15 }

// StandardP returns the standard-state pressure
func (o *Nasa7) StandardP() float64 { return 101325.0 }

// coefs returns the coefficients of the range governing temperature T
func (o *Nasa7) coefs(i int, T float64) *[7]float64 {
	if T > o.polys[i].Tmid {
		return &o.polys[i].High
	}
	return &o.polys[i].Low
}

// tgov returns the governing temperature of species i
func (o *Nasa7) tgov(i int, ts Temps) float64 {
	if o.electron[i] {
		return ts.Te
	}
	return ts.T
}

// CpR computes cp/R
func (o *Nasa7) CpR(ts Temps, cp []float64) {
	for i := range o.polys {
		T := o.tgov(i, ts)
		a := o.coefs(i, T)
		cp[i] = a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4])))
	}
}

// HRT computes h/RT
func (o *Nasa7) HRT(ts Temps, h []float64) {
	for i := range o.polys {
		T := o.tgov(i, ts)
		a := o.coefs(i, T)
		h[i] = a[0] + T*(a[1]/2.0+T*(a[2]/3.0+T*(a[3]/4.0+T*a[4]/5.0))) + a[5]/T
	}
}

// SR computes s/R at pressure P
func (o *Nasa7) SR(ts Temps, P float64, s []float64) {
	lnp := math.Log(P / o.StandardP())
	for i := range o.polys {
		T := o.tgov(i, ts)
		a := o.coefs(i, T)
		s[i] = a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2.0+T*(a[3]/3.0+T*a[4]/4.0))) + a[6] - lnp
	}
}

// GRT computes g/RT = h/RT - s/R
func (o *Nasa7) GRT(ts Temps, P float64, g []float64) {
	lnp := math.Log(P / o.StandardP())
	for i := range o.polys {
		T := o.tgov(i, ts)
		a := o.coefs(i, T)
		h := a[0] + T*(a[1]/2.0+T*(a[2]/3.0+T*(a[3]/4.0+T*a[4]/5.0))) + a[5]/T
		s := a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2.0+T*(a[3]/3.0+T*a[4]/4.0))) + a[6] - lnp
		g[i] = h - s
	}
}
