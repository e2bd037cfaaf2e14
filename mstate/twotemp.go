// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mstate

import (
	"github.com/cpmech/gosl/chk"
)

// TwoTemp implements the two-temperature state model: the heavy particle
// translational/rotational temperature T and the vibrational/electronic/
// electron temperature Tv
type TwoTemp struct {
	ns int       // number of species
	t  float64   // heavy particle temperature
	tv float64   // vibrational-electron-electronic temperature
	p  float64   // pressure
	x  []float64 // mole fractions
}

// add model to factory
func init() {
	allocators["twotemp"] = func() Model { return new(TwoTemp) }
}

// Init initialises this structure
func (o *TwoTemp) Init(ns int) {
	o.ns = ns
	o.x = make([]float64, ns)
}

// Ntemps returns the number of temperatures of this variant
func (o *TwoTemp) Ntemps() int { return 2 }

// SetStateTPX sets the state. T must have two entries: {T, Tv}.
func (o *TwoTemp) SetStateTPX(T []float64, P float64, X []float64) error {
	if len(T) != 2 {
		return chk.Err("two-temperature state model needs 2 temperatures, got %d", len(T))
	}
	if T[0] <= 0 || T[1] <= 0 || P <= 0 {
		return chk.Err("non-positive temperature or pressure: T=%v Tv=%v P=%v", T[0], T[1], P)
	}
	if len(X) != o.ns {
		return chk.Err("wrong number of mole fractions: %d != %d", len(X), o.ns)
	}
	o.t = T[0]
	o.tv = T[1]
	o.p = P
	copy(o.x, X)
	return nil
}

func (o *TwoTemp) T() float64   { return o.t }
func (o *TwoTemp) Tr() float64  { return o.t }
func (o *TwoTemp) Tv() float64  { return o.tv }
func (o *TwoTemp) Tel() float64 { return o.tv }
func (o *TwoTemp) Te() float64  { return o.tv }
func (o *TwoTemp) P() float64   { return o.p }
func (o *TwoTemp) X() []float64 { return o.x }
