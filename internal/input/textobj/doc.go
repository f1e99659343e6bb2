// Package textobj resolves vim text objects to byte ranges.
//
// Resolve takes the caret position, an object kind and the inner/around
// modifier and returns the half-open span the object covers. Objects:
//
//	w W       word, BIG-word
//	s         sentence (the current line)
//	p         paragraph
//	( ) b     parentheses
//	[ ]       square brackets
//	{ } B     braces
//	< >       angle brackets
//	' " `     quoted strings, bounded by the current line
//	t         tag (nearest enclosing <...> pair, no nesting awareness)
package textobj
