// Package abacus is an in-memory linear-algebra toolkit built around one
// idea: callers should not have to care whether a matrix is stored densely
// or sparsely.
//
// 🚀 What is abacus?
//
//	A small, deterministic library that brings together:
//		• Dense matrices: flat row-major buffers with safe accessors
//		• CSR matrices: compressed sparse row storage with merge-based
//		  add/sub and Gustavson multiplication
//		• Adaptive matrices: a facade that picks the better representation
//		  from the data's density and re-dispatches every operation
//		• NMF: non-negative matrix factorization on top of the engine
//
// ✨ Why choose abacus?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – sentinel errors, no panics on user input
//   - Pure Go – no cgo, no hidden deps
//   - Deterministic – fixed loop orders, no map iteration in results
//
// Everything is organized under two subpackages:
//
//	matrix/ — Dense, CSR and Adaptive representations + converters
//	nmf/    — multiplicative-update non-negative matrix factorization
//
// Quick ASCII example:
//
//	⎡ 1 0 0 2 ⎤
//	⎢ 0 0 0 0 ⎥   density 2/12 ≤ 0.2, stored as CSR behind the facade
//	⎣ 0 0 0 0 ⎦
//
// Dive into the package docs for usage patterns and complexity notes.
//
//	go get github.com/univ-lehavre/abacus
package abacus
