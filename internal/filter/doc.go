// Package filter selects the elements of a sequence that structurally match
// a query expression.
//
// An expression is one of:
//   - a Func predicate, applied to each item directly
//   - a primitive (Bool, Null, Number, String), matched against the whole
//     item or, for object items, against any of its properties
//   - an Object pattern whose keys map to sub-expressions of the same kinds
//
// Leaves are compared by a Comparator. The default comparator is a
// case-insensitive substring match; WithExact selects deep equality.
//
// A String expression starting with "!" negates the rest of the string.
// Array-valued fields match when any element matches. The any-property key
// (default "$") in a pattern matches its sub-expression against every
// property of the item.
//
// Filtering is pure and reentrant. The only side effect is a diagnostic
// log record when the input is not a sequence.
package filter
