// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the reading of chemistry database files: elements,
// species and reaction mechanisms
package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ElemRecord holds one element of the elements database. The free-electron
// charge carrier "e-" is an element here so that charge bookkeeping works
// through the same composition matrix as atomic bookkeeping.
type ElemRecord struct {
	Name string  `json:"name"` // name of element; e.g. "N"
	Mw   float64 `json:"mw"`   // atomic weight [kg/mol]
}

// AtomCount holds one (element, count) pair of a species formula. Count is
// negative for the "e-" element of positive ions.
type AtomCount struct {
	E string `json:"e"` // element name
	N int    `json:"n"` // number of atoms
}

// Nasa7 holds two-range 7-coefficient thermodynamic polynomial data
type Nasa7 struct {
	Tlow  float64    `json:"tlow"`  // lower bound of low range [K]
	Tmid  float64    `json:"tmid"`  // switch between ranges [K]
	Thigh float64    `json:"thigh"` // upper bound of high range [K]
	Low   [7]float64 `json:"low"`   // low range coefficients
	High  [7]float64 `json:"high"`  // high range coefficients
}

// SpecRecord holds one species of the species database
type SpecRecord struct {

	// input
	Name  string      `json:"name"`  // name of species; e.g. "N2"
	Phase string      `json:"phase"` // "gas" is the default
	Atoms []AtomCount `json:"atoms"` // elemental formula, in order
	Poly  *Nasa7      `json:"nasa7"` // polynomial data ("nasa7" model)
	CpR   float64     `json:"cpr"`   // constant cp/R ("constcp" model)
	HfR   float64     `json:"hfr"`   // formation enthalpy over R [K] ("constcp" model)
	S0R   float64     `json:"s0r"`   // standard entropy over R ("constcp" model)

	// derived
	Mw float64 `json:"-"` // molecular weight [kg/mol]
}

// IsElectron tells whether this record is the free electron
func (o *SpecRecord) IsElectron() bool { return o.Name == "e-" }

// NatomsOf returns the number of atoms of a given element in this species
func (o *SpecRecord) NatomsOf(elem string) int {
	for _, a := range o.Atoms {
		if a.E == elem {
			return a.N
		}
	}
	return 0
}

// ChemDb implements the chemistry database: all known elements and species
type ChemDb struct {

	// input
	Elements []*ElemRecord `json:"elements"` // all elements, in definition order
	Species  []*SpecRecord `json:"species"`  // all species, in definition order

	// derived
	elemIdx map[string]int // element name => index in Elements
	specIdx map[string]int // species name => index in Species
}

// ReadChem reads the chemistry database from elements.json and species.json
// located in the given directory
func ReadChem(dir string) (db *ChemDb, err error) {

	// new database
	db = new(ChemDb)

	// read elements
	b, err := io.ReadFile(filepath.Join(dir, "elements.json"))
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, db)
	if err != nil {
		return
	}

	// read species
	b, err = io.ReadFile(filepath.Join(dir, "species.json"))
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, db)
	if err != nil {
		return
	}

	// index elements
	db.elemIdx = make(map[string]int)
	for i, e := range db.Elements {
		if _, ok := db.elemIdx[e.Name]; ok {
			return nil, chk.Err("element %q is defined more than once in elements database", e.Name)
		}
		db.elemIdx[e.Name] = i
	}

	// index species and derive molecular weights
	db.specIdx = make(map[string]int)
	msg := ""
	for i, s := range db.Species {
		if _, ok := db.specIdx[s.Name]; ok {
			msg += io.Sf("species %q is defined more than once in species database\n", s.Name)
			continue
		}
		db.specIdx[s.Name] = i
		if s.Phase == "" {
			s.Phase = "gas"
		}
		s.Mw = 0
		for _, a := range s.Atoms {
			e := db.Element(a.E)
			if e == nil {
				msg += io.Sf("species %q refers to unknown element %q\n", s.Name, a.E)
				continue
			}
			s.Mw += float64(a.N) * e.Mw
		}
		if s.Mw <= 0 {
			msg += io.Sf("species %q has non-positive molecular weight %v\n", s.Name, s.Mw)
		}
	}
	if msg != "" {
		return nil, chk.Err("species database is inconsistent:\n%s", msg)
	}
	return
}

// Element returns one element record; nil if absent
func (o *ChemDb) Element(name string) *ElemRecord {
	if i, ok := o.elemIdx[name]; ok {
		return o.Elements[i]
	}
	return nil
}

// ElementIndex returns the definition-order index of an element; -1 if absent
func (o *ChemDb) ElementIndex(name string) int {
	if i, ok := o.elemIdx[name]; ok {
		return i
	}
	return -1
}

// FindSpecies returns one species record; nil if absent
func (o *ChemDb) FindSpecies(name string) *SpecRecord {
	if i, ok := o.specIdx[name]; ok {
		return o.Species[i]
	}
	return nil
}

// CheckMw verifies that the derived molecular weight of every species agrees
// with the value implied by the atomic weights to the given relative tolerance
func (o *ChemDb) CheckMw(tol float64) (err error) {
	for _, s := range o.Species {
		sum := 0.0
		for _, a := range s.Atoms {
			sum += float64(a.N) * o.Element(a.E).Mw
		}
		if math.Abs(sum-s.Mw) > tol*s.Mw {
			return chk.Err("species %q: molecular weight %v does not match atoms (%v)", s.Name, s.Mw, sum)
		}
	}
	return
}
