// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"strings"
	"testing"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func readDb(tst *testing.T) *inp.ChemDb {
	db, err := inp.ReadChem("../inp/data")
	if err != nil {
		tst.Fatalf("cannot read chemical database: %v\n", err)
	}
	return db
}

func Test_species01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("species01. registry and ordering")

	db := readDb(tst)
	species, elements, hasel, err := loadSpecies([]string{"O2", "NO", "N2"}, db)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if hasel {
		tst.Errorf("mixture must not have electrons\n")
		return
	}

	// species in database scan order
	chk.IntAssert(len(species), 3)
	chk.StrAssert(species[0].Name, "N2")
	chk.StrAssert(species[1].Name, "NO")
	chk.StrAssert(species[2].Name, "O2")

	// elements in database definition order
	chk.IntAssert(len(elements), 2)
	chk.StrAssert(elements[0].Name, "N")
	chk.StrAssert(elements[1].Name, "O")

	// formulas
	chk.IntAssert(species[0].Natoms("N"), 2)
	chk.IntAssert(species[1].Natoms("O"), 1)
	chk.IntAssert(species[1].Natoms("Ar"), 0)
}

func Test_species02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("species02. electron goes first")

	db := readDb(tst)
	species, elements, hasel, err := loadSpecies([]string{"N2", "N", "N+", "e-"}, db)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !hasel {
		tst.Errorf("mixture must have electrons\n")
		return
	}
	chk.StrAssert(species[0].Name, "e-")
	if !species[0].Electron {
		tst.Errorf("species 0 must be the electron\n")
		return
	}

	// charge is bookkept through the e- element
	chk.IntAssert(len(elements), 2)
	chk.StrAssert(elements[0].Name, "N")
	chk.StrAssert(elements[1].Name, "e-")
	for _, s := range species {
		if s.Name == "N+" {
			chk.IntAssert(s.Natoms("e-"), -1)
		}
	}
}

func Test_species03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("species03. all missing species are reported")

	db := readDb(tst)
	_, _, _, err := loadSpecies([]string{"N2", "Zz", "N", "Qq"}, db)
	if err == nil {
		tst.Errorf("error must be returned for missing species\n")
		return
	}
	io.Pforan("err = %v\n", err)
	for _, name := range []string{"Zz", "Qq"} {
		if !strings.Contains(err.Error(), name) {
			tst.Errorf("error message must mention %q\n", name)
			return
		}
	}
}
