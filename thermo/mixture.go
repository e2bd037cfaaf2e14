// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gochem/mstate"
	"github.com/cpmech/gochem/mthermo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Mixture implements the mixture facade: it owns the species/element
// registry, the composition matrix, the thermodynamic database model, the
// state model and the equilibrium solver, and mediates all property queries
type Mixture struct {

	// registry
	Species      []*Species     // all species; electron at 0 if present
	Elements     []*Element     // used elements, in database definition order
	HasElectrons bool           // mixture contains the free electron
	SpecIdx      map[string]int // species name => index
	ElemIdx      map[string]int // element name => index

	// derived
	Em [][]float64 // [ns][ne] composition matrix: atoms of element j in species i
	Mw []float64   // [ns] species molecular weights [kg/mol]

	// models
	tdb   mthermo.Model // thermodynamic database
	state mstate.Model  // state model
	equil *EquilSolver  // equilibrium solver

	// owned buffers
	work1       []float64 // [ns] scratch
	work2       []float64 // [ns] scratch
	ework       []float64 // [ne] scratch
	tempsBuf    []float64 // [state.Ntemps()] scratch
	defaultComp []float64 // [ne] default elemental composition
}

// NewMixture creates a mixture with the given species, thermodynamic database
// model (e.g. "nasa7") and state model (e.g. "single")
func NewMixture(speciesNames []string, thermoModel, stateModel string, db *inp.ChemDb) (mix *Mixture, err error) {

	// load species and elements
	mix = new(Mixture)
	mix.Species, mix.Elements, mix.HasElectrons, err = loadSpecies(speciesNames, db)
	if err != nil {
		return nil, err
	}
	ns, ne := len(mix.Species), len(mix.Elements)
	mix.SpecIdx = make(map[string]int)
	for i, s := range mix.Species {
		mix.SpecIdx[s.Name] = i
	}
	mix.ElemIdx = make(map[string]int)
	for j, e := range mix.Elements {
		mix.ElemIdx[e.Name] = j
	}

	// composition matrix and molecular weights. The matrix must reproduce
	// the species weights from the atomic weights (ions through the e- column).
	mix.Em = la.MatAlloc(ns, ne)
	mix.Mw = make([]float64, ns)
	for i, s := range mix.Species {
		sum := 0.0
		for j, e := range mix.Elements {
			mix.Em[i][j] = float64(s.Natoms(e.Name))
			sum += mix.Em[i][j] * e.Mw
		}
		mix.Mw[i] = s.Mw
		if math.Abs(sum-s.Mw) > 1e-3*s.Mw {
			return nil, chk.Err("species %q: molecular weight %v is inconsistent with its atoms (%v)", s.Name, s.Mw, sum)
		}
	}

	// thermodynamic database
	recs := make([]*inp.SpecRecord, ns)
	for i, s := range mix.Species {
		recs[i] = s.Rec
	}
	mix.tdb, err = mthermo.New(thermoModel)
	if err != nil {
		return nil, err
	}
	err = mix.tdb.Init(recs)
	if err != nil {
		return nil, err
	}

	// state model
	mix.state, err = mstate.New(stateModel)
	if err != nil {
		return nil, err
	}
	mix.state.Init(ns)

	// owned buffers
	mix.work1 = make([]float64, ns)
	mix.work2 = make([]float64, ns)
	mix.ework = make([]float64, ne)
	mix.tempsBuf = make([]float64, mix.state.Ntemps())

	// default composition: every element has equal parts
	mix.defaultComp = make([]float64, ne)
	la.VecFill(mix.defaultComp, 1.0/float64(ne))

	// equilibrium solver
	mix.equil = newEquilSolver(mix)
	return
}

// accessors //////////////////////////////////////////////////////////////////////////////////////

// Nspecies returns the number of species
func (o *Mixture) Nspecies() int { return len(o.Species) }

// Nelements returns the number of elements
func (o *Mixture) Nelements() int { return len(o.Elements) }

// SpeciesIndex returns the index of a species; -1 if absent
func (o *Mixture) SpeciesIndex(name string) int {
	if i, ok := o.SpecIdx[name]; ok {
		return i
	}
	return -1
}

// ElementIndex returns the index of an element; -1 if absent
func (o *Mixture) ElementIndex(name string) int {
	if j, ok := o.ElemIdx[name]; ok {
		return j
	}
	return -1
}

// SpeciesName returns the name of species i
func (o *Mixture) SpeciesName(i int) string { return o.Species[i].Name }

// ElementName returns the name of element j
func (o *Mixture) ElementName(j int) string { return o.Elements[j].Name }

// SpeciesMw returns the molecular weight of species i [kg/mol]
func (o *Mixture) SpeciesMw(i int) float64 { return o.Mw[i] }

// StandardT returns the standard-state temperature of the thermo database
func (o *Mixture) StandardT() float64 { return o.tdb.StandardT() }

// StandardP returns the standard-state pressure of the thermo database
func (o *Mixture) StandardP() float64 { return o.tdb.StandardP() }

// default composition ////////////////////////////////////////////////////////////////////////////

// SetDefaultComposition sets the default elemental composition used by
// equilibrium queries without an explicit composition. Every element of the
// mixture must be named exactly once; the fractions are scaled to sum to one.
// All violations are collected into the returned error and the held default
// composition is only replaced when the whole input is valid.
func (o *Mixture) SetDefaultComposition(comp fun.Prms) (err error) {
	ne := o.Nelements()
	set := make([]bool, ne)
	msg := ""
	for _, p := range comp {
		j := o.ElementIndex(p.N)
		if j < 0 {
			msg += io.Sf("element %q is not in this mixture\n", p.N)
			continue
		}
		if set[j] {
			msg += io.Sf("element %q is given more than once\n", p.N)
			continue
		}
		if p.V < 0 {
			msg += io.Sf("element %q has negative fraction %v\n", p.N, p.V)
			continue
		}
		o.ework[j] = p.V
		set[j] = true
	}
	for j := 0; j < ne; j++ {
		if !set[j] {
			msg += io.Sf("element %q is missing\n", o.ElementName(j))
		}
	}
	if msg != "" {
		return chk.Err("cannot set default elemental composition:\n%s", msg)
	}
	sum := 0.0
	for j := 0; j < ne; j++ {
		sum += o.ework[j]
	}
	if sum <= 0 {
		return chk.Err("default elemental composition must have a positive sum; got %v", sum)
	}
	for j := 0; j < ne; j++ {
		o.defaultComp[j] = o.ework[j] / sum
	}
	return
}

// DefaultComposition returns a copy of the default elemental composition
func (o *Mixture) DefaultComposition() []float64 {
	c := make([]float64, o.Nelements())
	copy(c, o.defaultComp)
	return c
}

// state //////////////////////////////////////////////////////////////////////////////////////////

// SetStateTPX sets the thermodynamic state from temperatures, pressure and
// mole fractions. The length of T depends on the state model variant.
func (o *Mixture) SetStateTPX(T []float64, P float64, X []float64) error {
	return o.state.SetStateTPX(T, P, X)
}

// SetStateTPY sets the thermodynamic state from temperatures, pressure and
// mass fractions
func (o *Mixture) SetStateTPY(T []float64, P float64, Y []float64) error {
	o.YtoX(Y, o.work1)
	return o.state.SetStateTPX(T, P, o.work1)
}

// T returns the heavy particle temperature
func (o *Mixture) T() float64 { return o.state.T() }

// Tr returns the rotational temperature
func (o *Mixture) Tr() float64 { return o.state.Tr() }

// Tv returns the vibrational temperature
func (o *Mixture) Tv() float64 { return o.state.Tv() }

// Tel returns the electronic temperature
func (o *Mixture) Tel() float64 { return o.state.Tel() }

// Te returns the free electron temperature
func (o *Mixture) Te() float64 { return o.state.Te() }

// P returns the pressure
func (o *Mixture) P() float64 { return o.state.P() }

// X returns the mole fractions held by the state model
func (o *Mixture) X() []float64 { return o.state.X() }

// temps builds the characteristic temperatures from the state model
func (o *Mixture) temps() (ts mthermo.Temps) {
	ts.T, ts.Tr, ts.Tv, ts.Tel, ts.Te = o.state.T(), o.state.Tr(), o.state.Tv(), o.state.Tel(), o.state.Te()
	return
}

// conversions ////////////////////////////////////////////////////////////////////////////////////

// MixtureMw returns the mixture molecular weight at the current state [kg/mol]
func (o *Mixture) MixtureMw() float64 {
	return o.MixtureMwX(o.X())
}

// MixtureMwX returns the mixture molecular weight of composition X [kg/mol]
func (o *Mixture) MixtureMwX(X []float64) (mw float64) {
	for i := 0; i < o.Nspecies(); i++ {
		mw += X[i] * o.Mw[i]
	}
	return
}

// XtoY converts mole fractions to mass fractions
func (o *Mixture) XtoY(X, Y []float64) {
	mw := o.MixtureMwX(X)
	for i := 0; i < o.Nspecies(); i++ {
		Y[i] = X[i] * o.Mw[i] / mw
	}
}

// YtoX converts mass fractions to mole fractions
func (o *Mixture) YtoX(Y, X []float64) {
	sum := 0.0
	for i := 0; i < o.Nspecies(); i++ {
		sum += Y[i] / o.Mw[i]
	}
	for i := 0; i < o.Nspecies(); i++ {
		X[i] = Y[i] / o.Mw[i] / sum
	}
}

// XtoConc converts mole fractions to molar concentrations [mol/m³] at (T, P)
func (o *Mixture) XtoConc(T, P float64, X, C []float64) {
	nd := P / (Ru * T)
	for i := 0; i < o.Nspecies(); i++ {
		C[i] = X[i] * nd
	}
}

// ConcToX converts molar concentrations to mole fractions
func (o *Mixture) ConcToX(C, X []float64) {
	sum := 0.0
	for i := 0; i < o.Nspecies(); i++ {
		sum += C[i]
	}
	for i := 0; i < o.Nspecies(); i++ {
		X[i] = C[i] / sum
	}
}

// NumberDensity returns the number density at (T, P) [1/m³]
func (o *Mixture) NumberDensity(T, P float64) float64 {
	return P / (Kb * T)
}

// Density returns the mass density of composition X at (T, P) [kg/m³]
func (o *Mixture) Density(T, P float64, X []float64) (rho float64) {
	for i := 0; i < o.Nspecies(); i++ {
		rho += X[i] * o.Mw[i]
	}
	return rho * P / (Ru * T)
}

// Pressure returns the pressure of mass fractions Y at (T, rho) [Pa]
func (o *Mixture) Pressure(T, rho float64, Y []float64) (P float64) {
	for i := 0; i < o.Nspecies(); i++ {
		P += Y[i] / o.Mw[i]
	}
	return P * rho * T * Ru
}

// ElementMoles computes element moles from species moles
func (o *Mixture) ElementMoles(specN, elemN []float64) {
	for j := 0; j < o.Nelements(); j++ {
		elemN[j] = 0
		for i := 0; i < o.Nspecies(); i++ {
			elemN[j] += specN[i] * o.Em[i][j]
		}
	}
}

// ElementFractions computes the normalized elemental composition implied by
// species mole fractions Xs
func (o *Mixture) ElementFractions(Xs, Xe []float64) {
	o.ElementMoles(Xs, Xe)
	sum := 0.0
	for j := 0; j < o.Nelements(); j++ {
		sum += Xe[j]
	}
	for j := 0; j < o.Nelements(); j++ {
		Xe[j] /= sum
	}
}

// species properties /////////////////////////////////////////////////////////////////////////////

// SpeciesCpR computes cp/R of every species at the current state
func (o *Mixture) SpeciesCpR(cp []float64) { o.tdb.CpR(o.temps(), cp) }

// SpeciesHRT computes h/RT of every species at the current state
func (o *Mixture) SpeciesHRT(h []float64) { o.tdb.HRT(o.temps(), h) }

// SpeciesSR computes s/R of every species at the current state
func (o *Mixture) SpeciesSR(s []float64) { o.tdb.SR(o.temps(), o.P(), s) }

// SpeciesGRT computes g/RT of every species at the current state
func (o *Mixture) SpeciesGRT(g []float64) { o.tdb.GRT(o.temps(), o.P(), g) }

// SpeciesGRTAt computes g/RT of every species at the given temperature and
// pressure, with all characteristic temperatures equal to T
func (o *Mixture) SpeciesGRTAt(T, P float64, g []float64) {
	var ts mthermo.Temps
	ts.SetAll(T)
	o.tdb.GRT(ts, P, g)
}

// SpeciesHRTAt computes h/RT of every species at the given temperature
func (o *Mixture) SpeciesHRTAt(T float64, h []float64) {
	var ts mthermo.Temps
	ts.SetAll(T)
	o.tdb.HRT(ts, h)
}

// frozen mixture properties //////////////////////////////////////////////////////////////////////

// FrozenCpMole returns the frozen specific heat at the current state [J/(mol·K)]
func (o *Mixture) FrozenCpMole() (cp float64) {
	o.SpeciesCpR(o.work1)
	for i, x := range o.X() {
		cp += o.work1[i] * x
	}
	return cp * Ru
}

// FrozenCpMass returns the frozen specific heat at the current state [J/(kg·K)]
func (o *Mixture) FrozenCpMass() float64 {
	return o.FrozenCpMole() / o.MixtureMw()
}

// FrozenCvMole returns the frozen cv at the current state [J/(mol·K)]
func (o *Mixture) FrozenCvMole() float64 {
	return o.FrozenCpMole() - Ru
}

// FrozenCvMass returns the frozen cv at the current state [J/(kg·K)]
func (o *Mixture) FrozenCvMass() float64 {
	return o.FrozenCvMole() / o.MixtureMw()
}

// FrozenGamma returns the frozen ratio of specific heats at the current state
func (o *Mixture) FrozenGamma() float64 {
	cp := o.FrozenCpMole()
	return cp / (cp - Ru)
}

// HMole returns the mixture enthalpy at the current state [J/mol]
func (o *Mixture) HMole() (h float64) {
	o.SpeciesHRT(o.work1)
	for i, x := range o.X() {
		h += o.work1[i] * x
	}
	return h * Ru * o.T()
}

// HMass returns the mixture enthalpy at the current state [J/kg]
func (o *Mixture) HMass() float64 {
	return o.HMole() / o.MixtureMw()
}

// SMole returns the mixture entropy at the current state [J/(mol·K)].
// Species entropies are taken at their partial pressures, which adds the
// entropy of mixing to the pure-species values.
func (o *Mixture) SMole() (s float64) {
	o.SpeciesSR(o.work1)
	for i, x := range o.X() {
		if x > 0 {
			s += (o.work1[i] - math.Log(x)) * x
		}
	}
	return s * Ru
}

// SMass returns the mixture entropy at the current state [J/(kg·K)]
func (o *Mixture) SMass() float64 {
	return o.SMole() / o.MixtureMw()
}

// equilibrium ////////////////////////////////////////////////////////////////////////////////////

// Equilibrate computes the equilibrium mole fractions X at (T, P) for the
// given elemental composition c. If setState is true, the resulting (T, P, X)
// also updates the mixture state; otherwise this is a pure query.
func (o *Mixture) Equilibrate(T, P float64, c []float64, X []float64, setState bool) (err error) {
	err = o.equil.Equilibrate(T, P, c, X)
	if err != nil {
		return
	}
	if setState {
		for k := range o.tempsBuf {
			o.tempsBuf[k] = T
		}
		return o.state.SetStateTPX(o.tempsBuf, P, X)
	}
	return
}

// EquilibrateDefault computes the equilibrium composition at (T, P) with the
// default elemental composition and sets the mixture state
func (o *Mixture) EquilibrateDefault(T, P float64) (err error) {
	return o.Equilibrate(T, P, o.defaultComp, o.work1, true)
}

// EquilCpMole returns the equilibrium specific heat at (T, P) around the
// equilibrium composition Xeq [J/(mol·K)]. The composition derivative is
// estimated by re-equilibrating at T·(1+eps) with eps=1e-6 while holding the
// elemental composition fixed. The frozen contribution is evaluated at the
// current state, which must be (T, P, Xeq).
func (o *Mixture) EquilCpMole(T, P float64, Xeq []float64) (cp float64, err error) {
	const eps = 1.0e-6

	// elemental composition of Xeq
	o.ElementFractions(Xeq, o.ework)

	// equilibrium composition at perturbed temperature
	err = o.Equilibrate(T*(1.0+eps), P, o.ework, o.work2, false)
	if err != nil {
		return
	}

	// dX/dT · h term added to the frozen cp
	o.SpeciesHRTAt(T, o.work1)
	for i := 0; i < o.Nspecies(); i++ {
		cp += (o.work2[i] - Xeq[i]) * o.work1[i]
	}
	return cp/eps*Ru + o.FrozenCpMole(), nil
}

// EquilCvMole returns the equilibrium cv at (T, P, Xeq) [J/(mol·K)]
func (o *Mixture) EquilCvMole(T, P float64, Xeq []float64) (cv float64, err error) {
	cp, err := o.EquilCpMole(T, P, Xeq)
	return cp - Ru, err
}

// EquilGamma returns the equilibrium ratio of specific heats at (T, P, Xeq)
func (o *Mixture) EquilGamma(T, P float64, Xeq []float64) (gam float64, err error) {
	cp, err := o.EquilCpMole(T, P, Xeq)
	if err != nil {
		return
	}
	return cp / (cp - Ru), nil
}
