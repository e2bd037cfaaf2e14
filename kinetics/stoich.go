// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinetics

// stoichRxn holds the (species index, coefficient) pairs of one reaction
type stoichRxn struct {
	irxn int       // reaction index
	idx  []int     // species indices
	nu   []float64 // stoichiometric coefficients
}

// StoichMgr implements a sparse incidence structure mapping reactions to the
// species they touch in one role (reactants, reversible products or
// irreversible products). It lets per-species rate assembly avoid a dense
// reaction-species matrix.
type StoichMgr struct {
	rxns []stoichRxn
}

// AddReaction indexes one reaction. idx and nu must have the same length.
func (o *StoichMgr) AddReaction(irxn int, idx []int, nu []float64) {
	s := stoichRxn{irxn: irxn, idx: make([]int, len(idx)), nu: make([]float64, len(nu))}
	copy(s.idx, idx)
	copy(s.nu, nu)
	o.rxns = append(o.rxns, s)
}

// IncrReactions adds the coefficient-weighted species values to the
// per-reaction vector: r[j] += Σ nu·s[i]
func (o *StoichMgr) IncrReactions(s, r []float64) {
	for _, x := range o.rxns {
		for t, i := range x.idx {
			r[x.irxn] += x.nu[t] * s[i]
		}
	}
}

// DecrReactions subtracts the coefficient-weighted species values from the
// per-reaction vector: r[j] -= Σ nu·s[i]
func (o *StoichMgr) DecrReactions(s, r []float64) {
	for _, x := range o.rxns {
		for t, i := range x.idx {
			r[x.irxn] -= x.nu[t] * s[i]
		}
	}
}

// MultReactions multiplies the per-reaction vector by the product of species
// concentrations raised to their coefficients: r[j] *= Π c[i]^nu
func (o *StoichMgr) MultReactions(c, r []float64) {
	for _, x := range o.rxns {
		for t, i := range x.idx {
			for m := 0; m < int(x.nu[t]); m++ {
				r[x.irxn] *= c[i]
			}
		}
	}
}

// IncrSpecies adds the coefficient-weighted rates of progress to the
// per-species vector: w[i] += nu·rop[j]
func (o *StoichMgr) IncrSpecies(rop, w []float64) {
	for _, x := range o.rxns {
		for t, i := range x.idx {
			w[i] += x.nu[t] * rop[x.irxn]
		}
	}
}

// DecrSpecies subtracts the coefficient-weighted rates of progress from the
// per-species vector: w[i] -= nu·rop[j]
func (o *StoichMgr) DecrSpecies(rop, w []float64) {
	for _, x := range o.rxns {
		for t, i := range x.idx {
			w[i] -= x.nu[t] * rop[x.irxn]
		}
	}
}

// tbRxn holds the third-body data of one reaction. Efficiencies are stored as
// deltas with respect to the default of 1 so that the effective third-body
// concentration is Σ c[i] + Σ delta·c[i].
type tbRxn struct {
	irxn  int
	idx   []int
	delta []float64
}

// ThirdbodyMgr implements the sparse third-body incidence structure
type ThirdbodyMgr struct {
	rxns []tbRxn
}

// AddReaction indexes one third-body reaction with its efficiency factors
func (o *ThirdbodyMgr) AddReaction(irxn int, idx []int, eff []float64) {
	x := tbRxn{irxn: irxn, idx: make([]int, len(idx)), delta: make([]float64, len(eff))}
	copy(x.idx, idx)
	for t, e := range eff {
		x.delta[t] = e - 1.0
	}
	o.rxns = append(o.rxns, x)
}

// MultThirdbodies multiplies the per-reaction vector by the effective
// third-body concentration of each registered reaction
func (o *ThirdbodyMgr) MultThirdbodies(c, r []float64) {
	sum := 0.0
	for _, ci := range c {
		sum += ci
	}
	for _, x := range o.rxns {
		tb := sum
		for t, i := range x.idx {
			tb += x.delta[t] * c[i]
		}
		r[x.irxn] *= tb
	}
}
