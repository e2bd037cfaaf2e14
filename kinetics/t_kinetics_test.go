// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinetics

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gochem/inp"
	"github.com/cpmech/gochem/thermo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// newMixture creates a test mixture
func newMixture(tst *testing.T, names []string) *thermo.Mixture {
	db, err := inp.ReadChem("../inp/data")
	if err != nil {
		tst.Fatalf("cannot read chemical database: %v\n", err)
	}
	mix, err := thermo.NewMixture(names, "nasa7", "single", db)
	if err != nil {
		tst.Fatalf("cannot create mixture: %v\n", err)
	}
	return mix
}

// newNitrogen creates the N2/N mixture with its dissociation mechanism
func newNitrogen(tst *testing.T) (*thermo.Mixture, *Kinetics) {
	mix := newMixture(tst, []string{"N2", "N"})
	mech, err := inp.ReadMech("../inp/data", "nitrogen3.mech")
	if err != nil {
		tst.Fatalf("cannot read mechanism: %v\n", err)
	}
	kin := New(mix)
	err = kin.LoadMech(mech)
	if err != nil {
		tst.Fatalf("cannot load mechanism: %v\n", err)
	}
	return mix, kin
}

func Test_ratelaw01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ratelaw01. arrhenius units handling")

	prms := fun.Prms{
		&fun.Prm{N: "a", V: 7.0e15},
		&fun.Prm{N: "b", V: -1.6},
		&fun.Prm{N: "ea", V: 113200.0},
	}
	var units inp.UnitsData
	units.SetDefault()

	law, err := NewRateLaw("arrhenius")
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = law.Init(prms, units, 2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	T := 5000.0
	lnk := math.Log(7.0e15) - 1.6*math.Log(T) - 113200.0/T
	chk.Scalar(tst, "lnk", 1e-12, law.LnK(T), lnk)

	// activation energy in J/mol
	units.E = "J/mol"
	prmsJ := fun.Prms{
		&fun.Prm{N: "a", V: 7.0e15},
		&fun.Prm{N: "b", V: -1.6},
		&fun.Prm{N: "ea", V: 113200.0 * thermo.Ru},
	}
	law2, _ := NewRateLaw("arrhenius")
	err = law2.Init(prmsJ, units, 2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "lnk J/mol", 1e-12, law2.LnK(T), lnk)

	// molecule quantity scales the pre-exponential factor
	units.SetDefault()
	units.Quantity = "molecule"
	law3, _ := NewRateLaw("arrhenius")
	err = law3.Init(prms, units, 2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "lnk molecule", 1e-12, law3.LnK(T), lnk+math.Log(thermo.Na))

	// missing parameters
	law4, _ := NewRateLaw("arrhenius")
	if err = law4.Init(fun.Prms{&fun.Prm{N: "a", V: 1.0}}, units, 2); err == nil {
		tst.Errorf("error must be returned for missing parameters\n")
		return
	}
	_, err = NewRateLaw("invalidlaw")
	if err == nil {
		tst.Errorf("error must be returned for unknown rate law\n")
		return
	}
}

func Test_kin01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin01. rate coefficients and detailed balance")

	mix, kin := newNitrogen(tst)
	chk.IntAssert(kin.Nreactions(), 1)

	T := 6000.0
	kf := make([]float64, 1)
	kb := make([]float64, 1)
	keq := make([]float64, 1)
	err := kin.ForwardRateCoefficients(T, kf)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = kin.BackwardRateCoefficients(T, kb)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = kin.EquilibriumConstants(T, keq)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// kf follows the arrhenius law
	kfref := 7.0e15 * math.Pow(T, -1.6) * math.Exp(-113200.0/T)
	chk.Scalar(tst, "kf", 1e-9*kfref, kf[0], kfref)

	// detailed balance: kb = kf/keq
	chk.Scalar(tst, "kb*keq", 1e-9*kf[0], kb[0]*keq[0], kf[0])

	// keq matches the gibbs functions: N2+M = 2N+M has dnu=1
	g := make([]float64, 2)
	mix.SpeciesGRTAt(T, mix.StandardP(), g)
	iN2, iN := mix.SpeciesIndex("N2"), mix.SpeciesIndex("N")
	lnkeq := math.Log(thermo.Pstd/(thermo.Ru*T)) + g[iN2] - 2.0*g[iN]
	chk.Scalar(tst, "keq", 1e-9*keq[0], keq[0], math.Exp(lnkeq))

	// temperature cache returns identical values within tolerance
	kf2 := make([]float64, 1)
	err = kin.ForwardRateCoefficients(T+1e-8, kf2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if kf2[0] != kf[0] {
		tst.Errorf("cached rate coefficient must be identical\n")
		return
	}
	err = kin.ForwardRateCoefficients(T+100.0, kf2)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if kf2[0] == kf[0] {
		tst.Errorf("rate coefficient must change with temperature\n")
		return
	}
}

func Test_kin02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin02. rates of progress and third body")

	mix, kin := newNitrogen(tst)
	iN2, iN := mix.SpeciesIndex("N2"), mix.SpeciesIndex("N")

	T := 6000.0
	c := make([]float64, 2)
	c[iN2] = 1.2
	c[iN] = 0.3

	kf := make([]float64, 1)
	kb := make([]float64, 1)
	ropf := make([]float64, 1)
	ropb := make([]float64, 1)
	rop := make([]float64, 1)
	kin.ForwardRateCoefficients(T, kf)
	kin.BackwardRateCoefficients(T, kb)
	err := kin.ForwardRatesOfProgress(T, c, ropf)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	kin.BackwardRatesOfProgress(T, c, ropb)
	kin.NetRatesOfProgress(T, c, rop)

	// third body: efficiency of N is 4.2857, N2 defaults to one
	tb := c[iN2] + 4.2857*c[iN]
	chk.Scalar(tst, "ropf", 1e-9*ropf[0], ropf[0], kf[0]*c[iN2]*tb)
	chk.Scalar(tst, "ropb", 1e-9*ropb[0], ropb[0], kb[0]*c[iN]*c[iN]*tb)
	chk.Scalar(tst, "rop", 1e-9*math.Abs(ropf[0]), rop[0], ropf[0]-ropb[0])
}

func Test_kin03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin03. production rates conserve mass")

	mix := newMixture(tst, []string{"N2", "O2", "NO", "N", "O"})
	mech, err := inp.ReadMech("../inp/data", "air5.mech")
	if err != nil {
		tst.Fatalf("cannot read mechanism: %v\n", err)
	}
	kin := New(mix)
	err = kin.LoadMech(mech)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(kin.Nreactions(), 5)

	ns := mix.Nspecies()
	c := []float64{0.1, 0.8, 0.05, 0.3, 0.02}
	wdot := make([]float64, ns)
	err = kin.NetProductionRates(5000.0, c, wdot)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("wdot = %v\n", wdot)

	// total mass is conserved
	scale := 0.0
	sum := 0.0
	for _, w := range wdot {
		sum += w
		scale += math.Abs(w)
	}
	chk.Scalar(tst, "sum{wdot}", 1e-12*scale, sum, 0.0)

	// every element is conserved
	for j := 0; j < mix.Nelements(); j++ {
		sum = 0.0
		for i := 0; i < ns; i++ {
			sum += wdot[i] / mix.SpeciesMw(i) * mix.Em[i][j]
		}
		chk.Scalar(tst, io.Sf("element %s", mix.ElementName(j)), 1e-12*scale, sum, 0.0)
	}
}

func Test_kin04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin04. equilibrium composition has zero net rates")

	mix, kin := newNitrogen(tst)

	// equilibrium composition at (T, P)
	T, P := 6000.0, 101325.0
	X := make([]float64, 2)
	err := mix.Equilibrate(T, P, []float64{1.0}, X, false)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	c := make([]float64, 2)
	mix.XtoConc(T, P, X, c)

	ropf := make([]float64, 1)
	rop := make([]float64, 1)
	kin.ForwardRatesOfProgress(T, c, ropf)
	err = kin.NetRatesOfProgress(T, c, rop)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("ropf = %v, rop = %v\n", ropf[0], rop[0])
	chk.Scalar(tst, "rop at equilibrium", 1e-7*ropf[0], rop[0], 0.0)
}

func Test_kin05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin05. irreversible reactions have zero backward rate")

	mix := newMixture(tst, []string{"N2", "N"})
	kin := New(mix)
	err := kin.AddReaction(&inp.RxnRecord{
		Formula:   "N2+M=>N+N+M",
		Reactants: []inp.SpecCoef{{S: "N2", Nu: 1}},
		Products:  []inp.SpecCoef{{S: "N", Nu: 2}},
		RateLaw:   "arrhenius",
		Prms: fun.Prms{
			&fun.Prm{N: "a", V: 7.0e15},
			&fun.Prm{N: "b", V: -1.6},
			&fun.Prm{N: "ea", V: 113200.0},
		},
		Reversible: false,
		Thirdbody:  true,
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = kin.CloseReactions(true)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	T := 6000.0
	kb := make([]float64, 1)
	ropb := make([]float64, 1)
	kin.BackwardRateCoefficients(T, kb)
	chk.Scalar(tst, "kb", 1e-17, kb[0], 0.0)
	err = kin.BackwardRatesOfProgress(T, []float64{1.2, 0.3}, ropb)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "ropb", 1e-17, ropb[0], 0.0)
}

func Test_kin06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin06. validation collects every failure")

	mix := newMixture(tst, []string{"N2", "N"})
	kin := New(mix)
	prms := fun.Prms{
		&fun.Prm{N: "a", V: 1.0e10},
		&fun.Prm{N: "b", V: 0.0},
		&fun.Prm{N: "ea", V: 1000.0},
	}

	// unknown species
	err := kin.AddReaction(&inp.RxnRecord{
		Formula:   "N2+O=NO+N",
		Reactants: []inp.SpecCoef{{S: "N2", Nu: 1}, {S: "O", Nu: 1}},
		Products:  []inp.SpecCoef{{S: "NO", Nu: 1}, {S: "N", Nu: 1}},
		RateLaw:   "arrhenius", Prms: prms,
		Reversible: true,
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// does not conserve nitrogen
	err = kin.AddReaction(&inp.RxnRecord{
		Formula:   "N2=N",
		Reactants: []inp.SpecCoef{{S: "N2", Nu: 1}},
		Products:  []inp.SpecCoef{{S: "N", Nu: 1}},
		RateLaw:   "arrhenius", Prms: prms,
		Reversible: true,
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// duplicate pair
	for i := 0; i < 2; i++ {
		err = kin.AddReaction(&inp.RxnRecord{
			Formula:   "N2=N+N",
			Reactants: []inp.SpecCoef{{S: "N2", Nu: 1}},
			Products:  []inp.SpecCoef{{S: "N", Nu: 2}},
			RateLaw:   "arrhenius", Prms: prms,
			Reversible: true,
		})
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
	}

	err = kin.CloseReactions(true)
	if err == nil {
		tst.Errorf("validation must fail\n")
		return
	}
	io.Pforan("err = %v\n", err)
	for _, frag := range []string{"does not exist", "does not conserve", "identical"} {
		if !strings.Contains(err.Error(), frag) {
			tst.Errorf("error message must contain %q\n", frag)
			return
		}
	}
}

func Test_kin07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin07. lifecycle misuse and edge cases")

	mix := newMixture(tst, []string{"N2", "N"})
	kin := New(mix)

	// rate queries before closing
	kf := make([]float64, 0)
	if err := kin.ForwardRateCoefficients(5000.0, kf); err == nil {
		tst.Errorf("error must be returned before closing\n")
		return
	}
	if err := kin.NetProductionRates(5000.0, []float64{1.0, 1.0}, make([]float64, 2)); err == nil {
		tst.Errorf("error must be returned before closing\n")
		return
	}
	if err := kin.Jacobian(5000.0, []float64{1.0, 1.0}, [][]float64{{0, 0}, {0, 0}}); err == nil {
		tst.Errorf("error must be returned before closing\n")
		return
	}

	// empty mechanism is the valid frozen-chemistry configuration
	err := kin.CloseReactions(true)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	wdot := make([]float64, 2)
	err = kin.NetProductionRates(5000.0, []float64{1.0, 1.0}, wdot)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Vector(tst, "wdot", 1e-17, wdot, []float64{0, 0})

	// adding after closing fails
	if err = kin.AddReaction(&inp.RxnRecord{Formula: "x"}); err == nil {
		tst.Errorf("error must be returned when adding after closing\n")
		return
	}

	// closing twice fails
	if err = kin.CloseReactions(true); err == nil {
		tst.Errorf("error must be returned when closing twice\n")
		return
	}

	// non-positive temperature fails
	_, kin2 := newNitrogen(tst)
	if err = kin2.ForwardRateCoefficients(-300.0, make([]float64, 1)); err == nil {
		tst.Errorf("error must be returned for negative temperature\n")
		return
	}
}

func Test_kin08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kin08. repeated species entries are canonicalized")

	prms := fun.Prms{
		&fun.Prm{N: "a", V: 1.0e10},
		&fun.Prm{N: "b", V: 0.0},
		&fun.Prm{N: "ea", V: 1000.0},
	}
	var units inp.UnitsData
	units.SetDefault()

	// N listed twice on the reactant side collapses into one entry
	split := &inp.RxnRecord{
		Formula:   "N+N=N2",
		Reactants: []inp.SpecCoef{{S: "N", Nu: 1}, {S: "N", Nu: 1}},
		Products:  []inp.SpecCoef{{S: "N2", Nu: 1}},
		RateLaw:   "arrhenius", Prms: prms,
		Reversible: true,
	}
	rxn, err := NewReaction(split, units)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(len(rxn.Reactants), 1)
	chk.IntAssert(rxn.NuReactant("N"), 2)
	chk.IntAssert(rxn.Order(), 2)
	chk.IntAssert(rxn.Dnu(), -1)

	// the split form and the explicit form are the same reaction
	mix := newMixture(tst, []string{"N2", "N"})
	kin := New(mix)
	err = kin.AddReaction(split)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = kin.AddReaction(&inp.RxnRecord{
		Formula:   "2N=N2",
		Reactants: []inp.SpecCoef{{S: "N", Nu: 2}},
		Products:  []inp.SpecCoef{{S: "N2", Nu: 1}},
		RateLaw:   "arrhenius", Prms: prms,
		Reversible: true,
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = kin.CloseReactions(true)
	if err == nil {
		tst.Errorf("validation must fail\n")
		return
	}
	io.Pforan("err = %v\n", err)
	if !strings.Contains(err.Error(), "identical") {
		tst.Errorf("error message must contain %q\n", "identical")
		return
	}
}
