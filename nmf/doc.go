// Package nmf provides non-negative matrix factorization on top of the
// abacus matrix engine. It approximates a non-negative matrix V (r×c) as
// the product W·H of two smaller non-negative factors (r×k and k×c) using
// Lee–Seung multiplicative updates for a fixed number of iterations.
//
// The routine is deterministic: factors are initialized from a seeded RNG
// (DefaultSeed unless overridden), update order is fixed, and no map
// iteration is involved. Inputs may be any matrix.Matrix implementation;
// they are densified once up front, since the update loop is dominated by
// dense products either way.
//
// Typical uses: topic extraction, parts-based decomposition, dimensionality
// reduction for strictly non-negative data.
package nmf
