// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinetics

import (
	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
)

// SpecNu holds one (species name, stoichiometric coefficient) pair
type SpecNu struct {
	Name string // species name
	Nu   int    // stoichiometric coefficient (positive)
}

// Eff holds one third-body efficiency factor
type Eff struct {
	Name string  // species name
	Val  float64 // efficiency factor
}

// Reaction holds one elementary reaction. Immutable once built.
type Reaction struct {
	Formula    string   // human readable formula
	Reactants  []SpecNu // reactant multiset
	Products   []SpecNu // product multiset
	Reversible bool     // has a backward path
	Thirdbody  bool     // rate scaled by the effective third-body concentration
	Effs       []Eff    // third-body efficiencies; unlisted species have 1
	Rate       RateLaw  // forward rate coefficient law
}

// mergeNu accumulates one (species, coefficient) pair into a stoichiometry
// list, summing into the existing entry when the species is already listed.
// Records naming a species more than once on the same side are thus
// canonicalized into a single entry per species.
func mergeNu(list []SpecNu, name string, nu int) []SpecNu {
	for i := range list {
		if list[i].Name == name {
			list[i].Nu += nu
			return list
		}
	}
	return append(list, SpecNu{name, nu})
}

// NewReaction builds a reaction from a mechanism record with the mechanism's
// global units directive
func NewReaction(rec *inp.RxnRecord, units inp.UnitsData) (r *Reaction, err error) {
	r = &Reaction{
		Formula:    rec.Formula,
		Reversible: rec.Reversible,
		Thirdbody:  rec.Thirdbody,
	}
	for _, sc := range rec.Reactants {
		if sc.Nu < 1 {
			return nil, chk.Err("reaction %q: reactant %q has non-positive coefficient %d", rec.Formula, sc.S, sc.Nu)
		}
		r.Reactants = mergeNu(r.Reactants, sc.S, sc.Nu)
	}
	for _, sc := range rec.Products {
		if sc.Nu < 1 {
			return nil, chk.Err("reaction %q: product %q has non-positive coefficient %d", rec.Formula, sc.S, sc.Nu)
		}
		r.Products = mergeNu(r.Products, sc.S, sc.Nu)
	}
	for _, e := range rec.Efficiencies {
		r.Effs = append(r.Effs, Eff{e.S, e.Eff})
	}
	r.Rate, err = NewRateLaw(rec.RateLaw)
	if err != nil {
		return nil, chk.Err("reaction %q: %v", rec.Formula, err)
	}
	err = r.Rate.Init(rec.Prms, units, r.Order())
	if err != nil {
		return nil, chk.Err("reaction %q: %v", rec.Formula, err)
	}
	return
}

// NuReactant returns the reactant stoichiometric coefficient of a species
func (o *Reaction) NuReactant(name string) int {
	for _, sn := range o.Reactants {
		if sn.Name == name {
			return sn.Nu
		}
	}
	return 0
}

// NuProduct returns the product stoichiometric coefficient of a species
func (o *Reaction) NuProduct(name string) int {
	for _, sn := range o.Products {
		if sn.Name == name {
			return sn.Nu
		}
	}
	return 0
}

// Dnu returns the net change in moles: products minus reactants
func (o *Reaction) Dnu() (dnu int) {
	for _, sn := range o.Products {
		dnu += sn.Nu
	}
	for _, sn := range o.Reactants {
		dnu -= sn.Nu
	}
	return
}

// Order returns the forward reaction order, counting the generic third body
func (o *Reaction) Order() (order int) {
	for _, sn := range o.Reactants {
		order += sn.Nu
	}
	if o.Thirdbody {
		order++
	}
	return
}

// Efficiency returns the third-body efficiency of a species (1 if unlisted)
func (o *Reaction) Efficiency(name string) float64 {
	for _, e := range o.Effs {
		if e.Name == name {
			return e.Val
		}
	}
	return 1.0
}
