// Package value provides the dynamic value model shared by the filter, the
// hotel listing and the CLI.
//
// Values decoded from JSON, YAML or CUE, and domain records exposed through
// Valuer, are converted into a closed set of variants before any matching
// happens. Matching code switches on the variant instead of probing host
// types with reflection.
//
// Key design constraints:
//   - Missing (absent) and Null are distinct variants and never equal
//   - Object keys are iterated in UTF-16 code unit order for determinism
//   - Number is float64; integer-valued numbers print without a fraction
//   - Func values are predicates, never data; they do not serialize
//
// This package imports nothing internal.
package value
