// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Element holds one element of a mixture
type Element struct {
	Name string  // name of element
	Mw   float64 // atomic weight [kg/mol]
}

// Species holds one species of a mixture
type Species struct {
	Name     string          // name of species
	Phase    string          // phase; "gas"
	Atoms    []inp.AtomCount // elemental formula, in order
	Mw       float64         // molecular weight [kg/mol]
	Electron bool            // this is the free electron

	// database record backing this species
	Rec *inp.SpecRecord
}

// Natoms returns the number of atoms of a given element in this species
func (o *Species) Natoms(elem string) int {
	for _, a := range o.Atoms {
		if a.E == elem {
			return a.N
		}
	}
	return 0
}

// loadSpecies scans the chemistry database and returns the requested species
// together with the elements they use. The species come out in database scan
// order, except that the free electron, if requested, is relocated to index 0
// by swapping with the first-loaded species. The element list keeps the
// database definition order and contains only elements used by at least one
// selected species. All missing species names are reported together.
func loadSpecies(names []string, db *inp.ChemDb) (species []*Species, elements []*Element, hasElectrons bool, err error) {

	// set of species still to find
	want := make(map[string]bool)
	for _, name := range names {
		want[name] = true
	}

	// scan database
	usedElems := make(map[int]bool)
	for _, rec := range db.Species {
		if !want[rec.Name] {
			continue
		}
		s := &Species{
			Name:     rec.Name,
			Phase:    rec.Phase,
			Atoms:    rec.Atoms,
			Mw:       rec.Mw,
			Electron: rec.IsElectron(),
			Rec:      rec,
		}
		species = append(species, s)
		for _, a := range rec.Atoms {
			usedElems[db.ElementIndex(a.E)] = true
		}

		// keep the electron at the beginning
		if s.Electron {
			if len(species) > 1 {
				species[0], species[len(species)-1] = species[len(species)-1], species[0]
			}
			hasElectrons = true
		}

		delete(want, rec.Name)
		if len(want) == 0 {
			break
		}
	}

	// make sure all species were found
	if len(want) > 0 {
		msg := ""
		for _, name := range names {
			if want[name] {
				msg += io.Sf("  %q\n", name)
			}
		}
		return nil, nil, false, chk.Err("cannot find all species in the chemistry database. missing:\n%s", msg)
	}

	// retain used elements in database definition order
	for i, e := range db.Elements {
		if usedElems[i] {
			elements = append(elements, &Element{Name: e.Name, Mw: e.Mw})
		}
	}
	return
}
