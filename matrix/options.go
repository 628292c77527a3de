// Package matrix: functional configuration for constructors and the
// adaptive facade. Defaults are documented constants (single source of
// truth); WithX constructors panic only on nonsensical values, which is a
// programmer error, never a data error.
package matrix

// Defaults.
const (
	// DefaultDensityThreshold is the density (nnz / rows·cols) at or below
	// which the adaptive facade prefers CSR over Dense.
	DefaultDensityThreshold = 0.2

	// DefaultValidateNaNInf toggles strict finite-value validation on
	// ingestion and Set.
	DefaultValidateNaNInf = true
)

// Internal panic messages (no magic strings).
const (
	panicThresholdInvalid = "matrix: WithDensityThreshold: threshold must be finite, within [0,1]"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option and resolve
// them via gatherOptions.
type Options struct {
	densityThreshold float64 // DefaultDensityThreshold
	validateNaNInf   bool    // DefaultValidateNaNInf
}

// WithDensityThreshold sets the density at or below which CSR is chosen.
// Panics with a stable message when t is NaN, ±Inf or outside [0,1].
func WithDensityThreshold(t float64) Option {
	if isNonFinite(t) || t < 0 || t > 1 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.densityThreshold = t }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation. The flag propagates
// only on creation; existing matrices keep their policy.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies user setters on top of the documented defaults;
// last-writer-wins. Complexity: O(len(user)).
func gatherOptions(user ...Option) Options {
	o := Options{
		densityThreshold: DefaultDensityThreshold,
		validateNaNInf:   DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
