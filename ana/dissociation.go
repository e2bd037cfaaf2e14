// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Dissociation computes the exact equilibrium composition of a symmetric
// ideal-gas dissociation
//
//	A2 = 2 A
//
// closed under element conservation. With k := kp·pstd/P the equilibrium
// mole fraction of atoms solves x² + k·x - k = 0, hence
//
//	x_A = (√(k² + 4k) - k) / 2
//
// where kp is the pressure-based equilibrium constant of the reaction.
type Dissociation struct {
	Pstd float64 // standard pressure
}

// Init initialises this structure. Optional parameter: pstd.
func (o *Dissociation) Init(prms fun.Prms) {
	o.Pstd = 101325.0
	for _, p := range prms {
		switch p.N {
		case "pstd":
			o.Pstd = p.V
		default:
			chk.Panic("Dissociation: parameter named %q is incorrect", p.N)
		}
	}
}

// MoleFractions computes the equilibrium mole fractions of molecules (xA2)
// and atoms (xA) at pressure P given the equilibrium constant kp
func (o Dissociation) MoleFractions(kp, P float64) (xA2, xA float64) {
	if kp < 0 || P <= 0 {
		chk.Panic("Dissociation: kp=%v and P=%v must be positive", kp, P)
	}
	k := kp * o.Pstd / P
	xA = (math.Sqrt(k*k+4.0*k) - k) / 2.0
	xA2 = 1.0 - xA
	return
}

// Alpha computes the degree of dissociation corresponding to the atomic mole
// fraction xA: starting from pure A2, a fraction α dissociates leaving
// (1-α) moles of A2 and 2α moles of A per initial mole
func (o Dissociation) Alpha(xA float64) float64 {
	return xA / (2.0 - xA)
}
