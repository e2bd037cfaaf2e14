// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinetics

// jacRxn holds the incidence data of one reaction needed to assemble the
// production-rate Jacobian
type jacRxn struct {
	reacIdx []int
	reacNu  []float64
	prodIdx []int
	prodNu  []float64
	tb      bool
	tbIdx   []int
	tbDelta []float64 // efficiency minus one
}

// JacMgr assembles the Jacobian of the net mass production rates with
// respect to the species concentrations, at fixed temperature
type JacMgr struct {
	rxns []jacRxn
	dRf  []float64 // [ns] derivative of forward rate of progress
	dRb  []float64 // [ns] derivative of backward rate of progress
	eff  []float64 // [ns] third-body efficiencies of current reaction
}

// AddReaction registers the incidence data of one reaction. The index and
// coefficient slices are copied.
func (o *JacMgr) AddReaction(reacIdx []int, reacNu []float64, prodIdx []int, prodNu []float64, tb bool, tbIdx []int, tbEff []float64) {
	r := jacRxn{
		reacIdx: append([]int(nil), reacIdx...),
		reacNu:  append([]float64(nil), reacNu...),
		prodIdx: append([]int(nil), prodIdx...),
		prodNu:  append([]float64(nil), prodNu...),
		tb:      tb,
	}
	if tb {
		r.tbIdx = append([]int(nil), tbIdx...)
		r.tbDelta = make([]float64, len(tbEff))
		for k, e := range tbEff {
			r.tbDelta[k] = e - 1.0
		}
	}
	o.rxns = append(o.rxns, r)
}

// prodPow returns Π c[idx[t]]^nu[t] using repeated multiplication since the
// coefficients are small integers
func prodPow(c []float64, idx []int, nu []float64) (p float64) {
	p = 1.0
	for t := range idx {
		for q := 0; q < int(nu[t]); q++ {
			p *= c[idx[t]]
		}
	}
	return
}

// dProdPow returns the derivative of Π c[idx]^nu with respect to the species
// of slot t. The derivative is formed as nu·c^(nu-1)·Π_other, which stays
// finite at zero concentrations: for nu=1 the own factor drops out and the
// product of the remaining factors survives, whereas nu>1 carries a factor of
// the vanishing concentration and the derivative is zero.
func dProdPow(c []float64, idx []int, nu []float64, t int) (d float64) {
	d = 1.0
	for tt := range idx {
		if tt == t {
			continue
		}
		for q := 0; q < int(nu[tt]); q++ {
			d *= c[idx[tt]]
		}
	}
	m := int(nu[t])
	for q := 0; q < m-1; q++ {
		d *= c[idx[t]]
	}
	return float64(m) * d
}

// Compute adds, for every reaction, the contribution to the Jacobian
// J[i][k] = d(wdot_i)/dc_k of the net mass production rates. J must be
// zeroed by the caller. kb entries of irreversible reactions must be zero,
// which silences the product-side derivative terms of those reactions.
func (o *JacMgr) Compute(kf, kb, c, mw []float64, J [][]float64) {
	ns := len(mw)
	if len(o.dRf) < ns {
		o.dRf = make([]float64, ns)
		o.dRb = make([]float64, ns)
		o.eff = make([]float64, ns)
	}
	for j, r := range o.rxns {

		// rates of progress without the third-body factor
		Rf := kf[j] * prodPow(c, r.reacIdx, r.reacNu)
		Rb := kb[j] * prodPow(c, r.prodIdx, r.prodNu)

		// effective third-body concentration
		tbval := 1.0
		if r.tb {
			tbval = 0.0
			for _, ck := range c {
				tbval += ck
			}
			for t, k := range r.tbIdx {
				tbval += r.tbDelta[t] * c[k]
			}
		}

		// concentration-power derivatives (reactant columns forward,
		// product columns backward)
		for t, k := range r.reacIdx {
			o.dRf[k] = kf[j] * dProdPow(c, r.reacIdx, r.reacNu, t)
		}
		for t, k := range r.prodIdx {
			o.dRb[k] = kb[j] * dProdPow(c, r.prodIdx, r.prodNu, t)
		}

		// assemble rows: reactant rows carry weight -nu, product rows +nu
		for t, i := range r.reacIdx {
			o.addRow(J, i, -r.reacNu[t]*mw[i], &r, tbval, Rf, Rb)
		}
		for t, i := range r.prodIdx {
			o.addRow(J, i, r.prodNu[t]*mw[i], &r, tbval, Rf, Rb)
		}

		// reset scratch columns touched by this reaction
		for _, k := range r.reacIdx {
			o.dRf[k] = 0
		}
		for _, k := range r.prodIdx {
			o.dRb[k] = 0
		}
	}
}

// addRow adds the contribution of one reaction to row i with net weight w
func (o *JacMgr) addRow(J [][]float64, i int, w float64, r *jacRxn, tbval, Rf, Rb float64) {
	for _, k := range r.reacIdx {
		J[i][k] += w * tbval * o.dRf[k]
	}
	for _, k := range r.prodIdx {
		J[i][k] -= w * tbval * o.dRb[k]
	}
	if r.tb {
		ns := len(J[i])
		for k := 0; k < ns; k++ {
			o.eff[k] = 1.0
		}
		for t, k := range r.tbIdx {
			o.eff[k] += r.tbDelta[t]
		}
		net := Rf - Rb
		for k := 0; k < ns; k++ {
			J[i][k] += w * o.eff[k] * net
		}
	}
}
