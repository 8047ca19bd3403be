// Package testutil provides testing utilities for sparsetable.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random sequences and ranges and
// brute-force oracles to check range query results against.
//
// # Random Input Generation
//
//	rng := testutil.NewRNG(seed)
//	values := rng.Ints(1000, -10000, 10000)
//	begin, end := rng.Range(len(values))
//
// # Oracles
//
//	want, pos := testutil.ArgMin(values[begin:end])
//	sum := testutil.Sum(values[begin:end])
package testutil
