// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"encoding/json"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gochem/thermo"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

type Input struct {
	Dir     string   // directory with elements.json and species.json
	Species []string // species of the mixture
	Thermo  string   // thermodynamic model name
	Comp    fun.Prms // default elemental composition
	Tmin    float64  // lowest temperature
	Tmax    float64  // highest temperature
	Np      int      // number of table rows
	P       float64  // pressure

	// derived
	inpfn string
}

func (o *Input) PostProcess() {
	if o.Thermo == "" {
		o.Thermo = "nasa7"
	}
	if o.Np < 2 {
		o.Np = 11
	}
	if o.P < 1e-10 {
		o.P = 101325.0
	}
}

func (o Input) String() (l string) {
	l = io.ArgsTable("INPUT ARGUMENTS",
		"input filename", "inpfn", o.inpfn,
		"directory with database files", "Dir", o.Dir,
		"species", "Species", io.Sf("%v", o.Species),
		"thermodynamic model", "Thermo", o.Thermo,
		"lowest temperature", "Tmin", o.Tmin,
		"highest temperature", "Tmax", o.Tmax,
		"number of rows", "Np", o.Np,
		"pressure", "P", o.P,
	)
	return
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data file
	var in Input
	in.inpfn, _ = io.ArgToFilename(0, "data/equiltable", ".inp", true)

	// read and parse input data
	b, err := io.ReadFile(in.inpfn)
	if err != nil {
		io.PfRed("cannot read %s\n", in.inpfn)
		return
	}
	err = json.Unmarshal(b, &in)
	if err != nil {
		io.PfRed("cannot parse %s\n", in.inpfn)
		return
	}
	in.PostProcess()
	io.Pf("%v\n", in)

	// mixture
	db, err := inp.ReadChem(in.Dir)
	if err != nil {
		io.PfRed("cannot read chemical database: %v\n", err)
		return
	}
	mix, err := thermo.NewMixture(in.Species, in.Thermo, "single", db)
	if err != nil {
		io.PfRed("cannot create mixture: %v\n", err)
		return
	}
	if len(in.Comp) > 0 {
		err = mix.SetDefaultComposition(in.Comp)
		if err != nil {
			io.PfRed("cannot set composition: %v\n", err)
			return
		}
	}

	// table
	io.Pf("%10s", "T")
	for i := 0; i < mix.Nspecies(); i++ {
		io.Pf("%14s", mix.SpeciesName(i))
	}
	io.Pf("\n")
	for _, T := range utl.LinSpace(in.Tmin, in.Tmax, in.Np) {
		err = mix.EquilibrateDefault(T, in.P)
		if err != nil {
			io.PfRed("equilibrium at T=%v failed: %v\n", T, err)
			return
		}
		io.Pf("%10.2f", T)
		for _, x := range mix.X() {
			io.Pf("%14.6e", x)
		}
		io.Pf("\n")
	}
}
