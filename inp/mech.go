// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// UnitsData holds the global units directive of a mechanism file. It applies
// to the Arrhenius parameters of every reaction in the file.
type UnitsData struct {
	E        string `json:"e"`        // activation energy unit: "K", "J/mol", "kJ/mol" or "cal/mol"
	Quantity string `json:"quantity"` // quantity unit of pre-exponential factors: "mol" or "molecule"
}

// SetDefault sets default units: Kelvin and mole
func (o *UnitsData) SetDefault() {
	o.E = "K"
	o.Quantity = "mol"
}

// SpecCoef holds one (species, stoichiometric coefficient) pair
type SpecCoef struct {
	S  string `json:"s"`  // species name
	Nu int    `json:"nu"` // stoichiometric coefficient (positive)
}

// Efficiency holds one third-body efficiency factor
type Efficiency struct {
	S   string  `json:"s"`   // species name
	Eff float64 `json:"eff"` // efficiency factor
}

// RxnRecord holds one reaction of a mechanism file
type RxnRecord struct {

	// input
	Formula      string       `json:"formula"`      // human readable formula; e.g. "N2+M=N+N+M"
	Reactants    []SpecCoef   `json:"reactants"`    // reactant multiset
	Products     []SpecCoef   `json:"products"`     // product multiset
	Efficiencies []Efficiency `json:"efficiencies"` // third-body efficiencies
	RateLaw      string       `json:"ratelaw"`      // rate law name; "arrhenius" is the default
	Prms         fun.Prms     `json:"prms"`         // rate law parameters

	// derived from formula
	Reversible bool `json:"-"` // formula uses "=" instead of "=>"
	Thirdbody  bool `json:"-"` // formula contains the generic collider "M"
}

// MechDb holds one reaction mechanism as read from a file
type MechDb struct {
	Units     UnitsData    `json:"units"`     // global units directive
	Reactions []*RxnRecord `json:"reactions"` // all reactions, in file order
}

// ReadMech reads a mechanism file. The reversibility and third-body flags of
// each reaction are derived from its formula string: "=>" marks an
// irreversible reaction and "+M" marks a third-body reaction.
func ReadMech(dir, fn string) (mech *MechDb, err error) {

	// new mechanism
	mech = new(MechDb)
	mech.Units.SetDefault()

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, mech)
	if err != nil {
		return
	}

	// units
	switch mech.Units.E {
	case "", "K":
		mech.Units.E = "K"
	case "J/mol", "kJ/mol", "cal/mol":
	default:
		return nil, chk.Err("mechanism %q: unknown activation energy unit %q", fn, mech.Units.E)
	}
	switch mech.Units.Quantity {
	case "", "mol":
		mech.Units.Quantity = "mol"
	case "molecule":
	default:
		return nil, chk.Err("mechanism %q: unknown quantity unit %q", fn, mech.Units.Quantity)
	}

	// derive flags and check records
	msg := ""
	for i, r := range mech.Reactions {
		if r.Formula == "" {
			msg += io.Sf("reaction # %d has no formula\n", i+1)
		}
		if len(r.Reactants) < 1 || len(r.Products) < 1 {
			msg += io.Sf("reaction # %d %q must have reactants and products\n", i+1, r.Formula)
		}
		if r.RateLaw == "" {
			r.RateLaw = "arrhenius"
		}
		r.Reversible = !strings.Contains(r.Formula, "=>")
		r.Thirdbody = strings.Contains(r.Formula, "+M")
	}
	if msg != "" {
		return nil, chk.Err("mechanism %q is inconsistent:\n%s", fn, msg)
	}
	return
}
