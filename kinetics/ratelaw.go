// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kinetics implements the reaction mechanism lifecycle, reaction rate
// evaluation and the kinetics Jacobian
package kinetics

import (
	"math"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gochem/thermo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// RateLaw defines forward rate coefficient laws. LnK returns the natural log
// of the rate coefficient for numerical range safety.
type RateLaw interface {
	Init(prms fun.Prms, units inp.UnitsData, order int) error
	LnK(T float64) float64
}

// NewRateLaw allocates a rate law by name
func NewRateLaw(name string) (law RateLaw, err error) {
	allocator, ok := rlAllocators[name]
	if !ok {
		return nil, chk.Err("rate law %q is not available in 'kinetics' database", name)
	}
	return allocator(), nil
}

// rlAllocators holds all available rate laws
var rlAllocators = map[string]func() RateLaw{}

// Arrhenius implements the modified Arrhenius law
//
//   k(T) = a Tᵇ exp(-θ/T)
//
// The units directive of the mechanism converts the activation energy to
// Kelvin and the pre-exponential factor to mole quantities at Init time.
type Arrhenius struct {
	lna   float64 // ln of pre-exponential factor [mol, m³, s units]
	b     float64 // temperature exponent
	theta float64 // activation temperature [K]
}

// add rate law to factory
func init() {
	rlAllocators["arrhenius"] = func() RateLaw { return new(Arrhenius) }
}

// Init initialises this rate law. order is the forward reaction order
// including the generic third body, needed for molecule to mole conversion of
// the pre-exponential factor.
func (o *Arrhenius) Init(prms fun.Prms, units inp.UnitsData, order int) (err error) {
	pa := prms.Find("a")
	pb := prms.Find("b")
	pe := prms.Find("ea")
	if pa == nil || pb == nil || pe == nil {
		return chk.Err("arrhenius rate law needs parameters 'a', 'b' and 'ea'")
	}
	a, ea := pa.V, pe.V
	if a <= 0 {
		return chk.Err("arrhenius pre-exponential factor must be positive; got %v", a)
	}
	o.b = pb.V
	switch units.E {
	case "K":
		o.theta = ea
	case "J/mol":
		o.theta = ea / thermo.Ru
	case "kJ/mol":
		o.theta = ea * 1000.0 / thermo.Ru
	case "cal/mol":
		o.theta = ea * 4.184 / thermo.Ru
	default:
		return chk.Err("unknown activation energy unit %q", units.E)
	}
	if units.Quantity == "molecule" {
		a *= math.Pow(thermo.Na, float64(order-1))
	}
	o.lna = math.Log(a)
	return
}

// LnK returns ln(k) at temperature T
func (o *Arrhenius) LnK(T float64) float64 {
	return o.lna + o.b*math.Log(T) - o.theta/T
}
