// Copyright 2016 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermo implements the species/element registry, the mixture facade
// and the Gibbs-energy-minimization equilibrium solver
package thermo

// physical constants
const (
	Ru   = 8.314472      // universal gas constant [J/(mol·K)]
	Kb   = 1.3806503e-23 // Boltzmann constant [J/K]
	Na   = 6.0221415e23  // Avogadro number [1/mol]
	Pstd = 101325.0      // standard-state pressure [Pa]
)
