// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mthermo implements thermodynamic database models providing
// dimensionless species properties cp/R, h/RT, s/R and g/RT
package mthermo

import (
	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
)

// Temps holds the characteristic temperatures of a thermodynamic state
type Temps struct {
	T   float64 // heavy particle translational temperature
	Tr  float64 // rotational temperature
	Tv  float64 // vibrational temperature
	Tel float64 // electronic temperature
	Te  float64 // free electron temperature
}

// SetAll sets all temperatures equal to T
func (o *Temps) SetAll(T float64) {
	o.T, o.Tr, o.Tv, o.Tel, o.Te = T, T, T, T, T
}

// Model defines thermodynamic database models. All property functions fill
// one slot per species, in the order given to Init. Free electron species are
// evaluated at Te; heavy species at T.
type Model interface {
	Init(recs []*inp.SpecRecord) error // Init initialises this structure
	StandardT() float64                // StandardT returns the standard-state temperature
	StandardP() float64                // StandardP returns the standard-state pressure
	CpR(ts Temps, cp []float64)        // CpR computes cp/R
	HRT(ts Temps, h []float64)         // HRT computes h/RT
	SR(ts Temps, P float64, s []float64)  // SR computes s/R at pressure P
	GRT(ts Temps, P float64, g []float64) // GRT computes g/RT = h/RT - s/R
}

// New thermodynamic database model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'mthermo' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
