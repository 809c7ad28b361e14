// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

/*
Package demo generates seeded synthetic data for the --demo server mode
and for exploratory testing.

Everything flows from one *rand.Rand, so the same seed always produces the
same venues, deals, customers and histories. Production scoring paths never
import this package; the engines only see data handed to them through the
analytics service's Load* methods.

	gen := demo.NewGenerator(42, time.Now())
	gen.Seed(service)
*/
package demo
