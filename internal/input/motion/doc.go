// Package motion computes caret destinations for vim motions.
//
// Every function is pure with respect to the surface: it reads text and
// returns an offset clamped to [0, Len()]. Move applies a destination,
// either collapsing the selection (Normal mode) or extending it from the
// fixed anchor (Visual mode).
//
// Word motions use three character classes (whitespace, keyword
// characters, punctuation) and BIG-word motions two (whitespace and
// everything else). Character searches (f, F, t, T) never leave the
// current line.
package motion
