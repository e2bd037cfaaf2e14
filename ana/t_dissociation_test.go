// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_dissoc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dissoc01. symmetric dissociation closed form")

	var sol Dissociation
	sol.Init(nil)
	chk.Scalar(tst, "pstd", 1e-17, sol.Pstd, 101325.0)

	// the solution satisfies the equilibrium condition
	P := 2.0 * 101325.0
	for _, kp := range []float64{1e-8, 1e-3, 1.0, 1e3} {
		xA2, xA := sol.MoleFractions(kp, P)
		chk.Scalar(tst, io.Sf("sum @ kp=%g", kp), 1e-14, xA2+xA, 1.0)
		chk.Scalar(tst, io.Sf("keq @ kp=%g", kp), 1e-9*kp, xA*xA/xA2*(P/sol.Pstd), kp)
	}

	// limits
	xA2, xA := sol.MoleFractions(0.0, P)
	chk.Scalar(tst, "xA2 @ kp=0", 1e-15, xA2, 1.0)
	chk.Scalar(tst, "xA @ kp=0", 1e-15, xA, 0.0)
	_, xA = sol.MoleFractions(1e12, P)
	if xA < 1.0-1e-5 {
		tst.Errorf("atoms must dominate for huge kp: xA=%v\n", xA)
		return
	}

	// degree of dissociation grows monotonically with kp
	prev := -1.0
	for _, kp := range utl.LinSpace(0, 10, 11) {
		_, xA = sol.MoleFractions(kp, P)
		alp := sol.Alpha(xA)
		if alp <= prev {
			tst.Errorf("alpha must grow with kp\n")
			return
		}
		if alp < 0 || alp > 1 {
			tst.Errorf("alpha %v is out of range\n", alp)
			return
		}
		prev = alp
	}
}
