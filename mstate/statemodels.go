// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mstate implements thermodynamic state models holding the current
// temperatures, pressure and composition of a mixture
package mstate

import (
	"github.com/cpmech/gosl/chk"
)

// Model defines state models. SetStateTPX takes a slice of temperatures whose
// required length depends on the variant; mole fractions are copied in.
type Model interface {
	Init(ns int)                                        // Init initialises this structure
	Ntemps() int                                        // Ntemps returns the number of temperatures of this variant
	SetStateTPX(T []float64, P float64, X []float64) error // SetStateTPX sets the state
	T() float64                                         // T returns the heavy particle temperature
	Tr() float64                                        // Tr returns the rotational temperature
	Tv() float64                                        // Tv returns the vibrational temperature
	Tel() float64                                       // Tel returns the electronic temperature
	Te() float64                                        // Te returns the free electron temperature
	P() float64                                         // P returns the pressure
	X() []float64                                       // X returns the mole fractions
}

// New state model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'mstate' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
