// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mstate

import (
	"github.com/cpmech/gosl/chk"
)

// Single implements the single-temperature state model: all characteristic
// temperatures are equal
type Single struct {
	ns int       // number of species
	t  float64   // temperature
	p  float64   // pressure
	x  []float64 // mole fractions
}

// add model to factory
func init() {
	allocators["single"] = func() Model { return new(Single) }
}

// Init initialises this structure
func (o *Single) Init(ns int) {
	o.ns = ns
	o.x = make([]float64, ns)
}

// Ntemps returns the number of temperatures of this variant
func (o *Single) Ntemps() int { return 1 }

// SetStateTPX sets the state. T must have one entry.
func (o *Single) SetStateTPX(T []float64, P float64, X []float64) error {
	if len(T) != 1 {
		return chk.Err("single-temperature state model needs 1 temperature, got %d", len(T))
	}
	if T[0] <= 0 || P <= 0 {
		return chk.Err("non-positive temperature or pressure: T=%v P=%v", T[0], P)
	}
	if len(X) != o.ns {
		return chk.Err("wrong number of mole fractions: %d != %d", len(X), o.ns)
	}
	o.t = T[0]
	o.p = P
	copy(o.x, X)
	return nil
}

func (o *Single) T() float64   { return o.t }
func (o *Single) Tr() float64  { return o.t }
func (o *Single) Tv() float64  { return o.t }
func (o *Single) Tel() float64 { return o.t }
func (o *Single) Te() float64  { return o.t }
func (o *Single) P() float64   { return o.p }
func (o *Single) X() []float64 { return o.x }
