// Package surface defines the text surface the modal engine edits and
// provides Memory, an in-memory implementation.
//
// Offsets are zero-based byte positions into a single logical text. Lines
// are separated by '\n'; a '\r' immediately before the '\n' belongs to the
// line terminator. Every position argument is clamped to [0, Len()], so no
// call can index out of range.
package surface
