// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinetics

import (
	"math"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gochem/thermo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// tTol is the relative temperature tolerance of the rate state cache
const tTol = 1.0e-6

// Kinetics implements the reaction rate engine for one mixture. The
// lifecycle is: New (building) -> AddReaction* -> CloseReactions (closed).
// Rate queries are only valid after closing. The only mutable state after
// closing is the last-temperature memoization of rate coefficients and
// equilibrium constants.
type Kinetics struct {

	// mixture access
	mix *thermo.Mixture

	// mechanism
	units  inp.UnitsData
	Rxns   []*Reaction
	nr     int
	closed bool

	// sparse incidence structures
	reactants   StoichMgr    // reactant coefficients
	revProds    StoichMgr    // product coefficients of reversible reactions
	irrProds    StoichMgr    // product coefficients of irreversible reactions
	thirdbodies ThirdbodyMgr // third-body efficiencies
	jac         JacMgr       // Jacobian structure

	// diagnostics collected while building, reported by validation
	pending []string

	// derived at close time
	dnu []float64 // [nr] net mole change per reaction

	// rate state cache
	Tlast float64   // last evaluated temperature
	lnkf  []float64 // [nr] ln of forward rate coefficients
	lnkeq []float64 // [nr] ln of equilibrium constants
	kf    []float64 // [nr] forward rate coefficients
	kb    []float64 // [nr] backward rate coefficients; zero for irreversible

	// work buffers
	ropf  []float64 // [nr]
	ropb  []float64 // [nr]
	rop   []float64 // [nr]
	gwork []float64 // [ns]
}

// New creates a kinetics engine in the building state with default units
func New(mix *thermo.Mixture) (o *Kinetics) {
	o = new(Kinetics)
	o.mix = mix
	o.units.SetDefault()
	o.Tlast = -1
	return
}

// SetUnits sets the units directive applying to reactions added afterwards
func (o *Kinetics) SetUnits(units inp.UnitsData) {
	o.units = units
}

// Nreactions returns the number of reactions
func (o *Kinetics) Nreactions() int { return o.nr }

// AddReaction appends one reaction to the mechanism. Only valid before
// CloseReactions. Species names that do not resolve to mixture species are
// remembered and reported by validation at close time.
func (o *Kinetics) AddReaction(rec *inp.RxnRecord) (err error) {
	if o.closed {
		return chk.Err("cannot add reaction %q: mechanism is closed", rec.Formula)
	}
	rxn, err := NewReaction(rec, o.units)
	if err != nil {
		return
	}
	j := o.nr

	// index reactants and products
	reacIdx, reacNu := o.speciesIndices(j, rxn.Formula, rxn.Reactants)
	prodIdx, prodNu := o.speciesIndices(j, rxn.Formula, rxn.Products)
	o.reactants.AddReaction(j, reacIdx, reacNu)
	if rxn.Reversible {
		o.revProds.AddReaction(j, prodIdx, prodNu)
	} else {
		o.irrProds.AddReaction(j, prodIdx, prodNu)
	}

	// index third bodies
	var tbIdx []int
	var tbEff []float64
	if rxn.Thirdbody {
		for _, e := range rxn.Effs {
			i := o.mix.SpeciesIndex(e.Name)
			if i < 0 {
				o.pending = append(o.pending, io.Sf("from reaction # %d %q, third-body species %q does not exist in the mixture\n", j+1, rxn.Formula, e.Name))
				continue
			}
			tbIdx = append(tbIdx, i)
			tbEff = append(tbEff, e.Val)
		}
		o.thirdbodies.AddReaction(j, tbIdx, tbEff)
	}

	// register with the Jacobian structure
	o.jac.AddReaction(reacIdx, reacNu, prodIdx, prodNu, rxn.Thirdbody, tbIdx, tbEff)

	o.Rxns = append(o.Rxns, rxn)
	o.nr++
	return
}

// speciesIndices resolves the species of one reaction side, remembering
// unresolved names for validation
func (o *Kinetics) speciesIndices(j int, formula string, side []SpecNu) (idx []int, nu []float64) {
	for _, sn := range side {
		i := o.mix.SpeciesIndex(sn.Name)
		if i < 0 {
			o.pending = append(o.pending, io.Sf("from reaction # %d %q, species %q does not exist in the mixture\n", j+1, formula, sn.Name))
			continue
		}
		idx = append(idx, i)
		nu = append(nu, float64(sn.Nu))
	}
	return
}

// LoadMech adds every reaction of a mechanism and closes with validation
func (o *Kinetics) LoadMech(mech *inp.MechDb) (err error) {
	o.SetUnits(mech.Units)
	for _, rec := range mech.Reactions {
		err = o.AddReaction(rec)
		if err != nil {
			return
		}
	}
	return o.CloseReactions(true)
}

// CloseReactions closes the mechanism and allocates the derived per-reaction
// vectors. If validate is true, all of the following are checked and every
// failure found is collected into the returned error: (1) every species of
// every reaction resolves to a mixture species; (2) no two reactions are
// identical up to normalization of their net stoichiometry; (3) every
// reaction conserves every element (and charge, since charge is an element).
func (o *Kinetics) CloseReactions(validate bool) (err error) {
	if o.closed {
		return chk.Err("mechanism is already closed")
	}
	ns := o.mix.Nspecies()

	if validate {
		msg := ""

		// check that every species of every reaction exists in the mixture
		for _, p := range o.pending {
			msg += p
		}

		// check for duplicate reactions
		si := make([]float64, ns)
		sj := make([]float64, ns)
		for i := 0; i < o.nr-1; i++ {
			o.netStoich(o.Rxns[i], si)
			for j := i + 1; j < o.nr; j++ {
				o.netStoich(o.Rxns[j], sj)
				if sameDirection(si, sj) {
					msg += io.Sf("reactions # %d %q and # %d %q are identical\n", i+1, o.Rxns[i].Formula, j+1, o.Rxns[j].Formula)
				}
			}
		}

		// check elemental mass and charge conservation
		s := make([]float64, ns)
		mass := make([]float64, o.nr)
		for j := 0; j < o.mix.Nelements(); j++ {
			for i := 0; i < ns; i++ {
				s[i] = o.mix.Em[i][j]
			}
			o.reactionDelta(s, mass)
			for r := 0; r < o.nr; r++ {
				if mass[r] != 0.0 {
					msg += io.Sf("reaction # %d %q does not conserve element %q\n", r+1, o.Rxns[r].Formula, o.mix.ElementName(j))
				}
			}
		}

		if msg != "" {
			return chk.Err("reaction mechanism validation failed:\n%s", msg)
		}
	}

	// net mole change per reaction
	ones := make([]float64, ns)
	la.VecFill(ones, 1.0)
	o.dnu = make([]float64, o.nr)
	o.reactionDelta(ones, o.dnu)

	// work vectors
	o.lnkf = make([]float64, o.nr)
	o.lnkeq = make([]float64, o.nr)
	o.kf = make([]float64, o.nr)
	o.kb = make([]float64, o.nr)
	o.ropf = make([]float64, o.nr)
	o.ropb = make([]float64, o.nr)
	o.rop = make([]float64, o.nr)
	o.gwork = make([]float64, ns)
	o.Tlast = -1
	o.closed = true
	return
}

// netStoich fills the per-species net stoichiometry of one reaction,
// normalized to unit Euclidean length
func (o *Kinetics) netStoich(rxn *Reaction, s []float64) {
	sum := 0.0
	for i := 0; i < o.mix.Nspecies(); i++ {
		name := o.mix.SpeciesName(i)
		s[i] = float64(rxn.NuProduct(name) - rxn.NuReactant(name))
		sum += s[i] * s[i]
	}
	if sum > 0 {
		den := math.Sqrt(sum)
		for i := range s {
			s[i] /= den
		}
	}
}

// sameDirection tells whether two unit vectors are equal within tolerance
func sameDirection(a, b []float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}

// reactionDelta computes r[j] = Σ_products nu·s[i] - Σ_reactants nu·s[i]
func (o *Kinetics) reactionDelta(s, r []float64) {
	la.VecFill(r, 0)
	o.reactants.DecrReactions(s, r)
	o.revProds.IncrReactions(s, r)
	o.irrProds.IncrReactions(s, r)
}

// updateT refreshes the rate state cache if T differs from the cached
// temperature by more than the cache tolerance
func (o *Kinetics) updateT(T float64) (err error) {
	if !o.closed {
		return chk.Err("mechanism must be closed before rate evaluation")
	}
	if T <= 0 {
		return chk.Err("rate coefficients are undefined for non-positive temperature T=%v", T)
	}
	if math.Abs(T-o.Tlast) < tTol {
		return
	}

	// forward rate coefficients
	for j, rxn := range o.Rxns {
		o.lnkf[j] = rxn.Rate.LnK(T)
	}

	// equilibrium constants:
	//   ln(keq) = dnu·ln(Pstd/(Ru·T)) + Σ_reactants g - Σ_products g
	// with g evaluated at the standard pressure so that keq depends on T only
	lnc := math.Log(thermo.Pstd / (thermo.Ru * T))
	for j := 0; j < o.nr; j++ {
		o.lnkeq[j] = o.dnu[j] * lnc
	}
	o.mix.SpeciesGRTAt(T, o.mix.StandardP(), o.gwork)
	o.reactants.IncrReactions(o.gwork, o.lnkeq)
	o.revProds.DecrReactions(o.gwork, o.lnkeq)
	o.irrProds.DecrReactions(o.gwork, o.lnkeq)

	// backward coefficient in log space to keep precision when keq spans
	// many decades
	for j, rxn := range o.Rxns {
		o.kf[j] = math.Exp(o.lnkf[j])
		if rxn.Reversible {
			o.kb[j] = math.Exp(o.lnkf[j] - o.lnkeq[j])
		} else {
			o.kb[j] = 0
		}
	}
	o.Tlast = T
	return
}

// checkConc panics on negative concentrations (caller misuse)
func (o *Kinetics) checkConc(c []float64) {
	for i, ci := range c {
		if ci < 0 {
			chk.Panic("negative concentration of species %q: %v", o.mix.SpeciesName(i), ci)
		}
	}
}

// ForwardRateCoefficients computes kf at temperature T [SI mole units]
func (o *Kinetics) ForwardRateCoefficients(T float64, kf []float64) (err error) {
	err = o.updateT(T)
	if err != nil {
		return
	}
	copy(kf, o.kf)
	return
}

// BackwardRateCoefficients computes kb = kf/keq at temperature T. Entries of
// irreversible reactions are zero.
func (o *Kinetics) BackwardRateCoefficients(T float64, kb []float64) (err error) {
	err = o.updateT(T)
	if err != nil {
		return
	}
	copy(kb, o.kb)
	return
}

// EquilibriumConstants computes the concentration-based equilibrium constants
// at temperature T
func (o *Kinetics) EquilibriumConstants(T float64, keq []float64) (err error) {
	err = o.updateT(T)
	if err != nil {
		return
	}
	for j := 0; j < o.nr; j++ {
		keq[j] = math.Exp(o.lnkeq[j])
	}
	return
}

// ForwardRatesOfProgress computes the forward rates of progress for the given
// species concentrations [mol/m³]
func (o *Kinetics) ForwardRatesOfProgress(T float64, c, ropf []float64) (err error) {
	o.checkConc(c)
	err = o.updateT(T)
	if err != nil {
		return
	}
	copy(ropf, o.kf)
	o.reactants.MultReactions(c, ropf)
	o.thirdbodies.MultThirdbodies(c, ropf)
	return
}

// BackwardRatesOfProgress computes the backward rates of progress.
// Irreversible reactions have zero backward rate.
func (o *Kinetics) BackwardRatesOfProgress(T float64, c, ropb []float64) (err error) {
	o.checkConc(c)
	err = o.updateT(T)
	if err != nil {
		return
	}
	copy(ropb, o.kb)
	o.revProds.MultReactions(c, ropb)
	o.thirdbodies.MultThirdbodies(c, ropb)
	return
}

// NetRatesOfProgress computes forward minus backward rates of progress,
// scaled once by the effective third-body concentration
func (o *Kinetics) NetRatesOfProgress(T float64, c, rop []float64) (err error) {
	o.checkConc(c)
	err = o.updateT(T)
	if err != nil {
		return
	}
	copy(o.ropf, o.kf)
	o.reactants.MultReactions(c, o.ropf)
	copy(o.ropb, o.kb)
	o.revProds.MultReactions(c, o.ropb)
	for j := 0; j < o.nr; j++ {
		rop[j] = o.ropf[j] - o.ropb[j]
	}
	o.thirdbodies.MultThirdbodies(c, rop)
	return
}

// NetProductionRates computes the net mass production rate of every species
// [kg/(m³·s)]. A mechanism with zero reactions is the valid frozen-chemistry
// configuration and yields zero rates.
func (o *Kinetics) NetProductionRates(T float64, c, wdot []float64) (err error) {
	if !o.closed {
		return chk.Err("mechanism must be closed before rate evaluation")
	}
	la.VecFill(wdot, 0)
	if o.nr == 0 {
		return
	}
	err = o.NetRatesOfProgress(T, c, o.rop)
	if err != nil {
		return
	}
	o.reactants.DecrSpecies(o.rop, wdot)
	o.revProds.IncrSpecies(o.rop, wdot)
	o.irrProds.IncrSpecies(o.rop, wdot)
	for i := 0; i < o.mix.Nspecies(); i++ {
		wdot[i] *= o.mix.SpeciesMw(i)
	}
	return
}

// Jacobian computes d(wdot)/dc at fixed temperature T, where wdot are the
// net mass production rates and c the species concentrations. J must be an
// ns×ns matrix.
func (o *Kinetics) Jacobian(T float64, c []float64, J [][]float64) (err error) {
	if !o.closed {
		return chk.Err("mechanism must be closed before rate evaluation")
	}
	o.checkConc(c)
	la.MatFill(J, 0)
	if o.nr == 0 {
		return
	}
	err = o.updateT(T)
	if err != nil {
		return
	}
	o.jac.Compute(o.kf, o.kb, c, o.mix.Mw, J)
	return
}
