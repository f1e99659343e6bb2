package macro

import "unicode"

// IsValidRegister reports whether a macro can be stored under r: a
// lowercase letter or a digit.
func IsValidRegister(r rune) bool {
	return ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}

// IsAppendRegister reports whether r is an uppercase letter, which records
// onto the end of its lowercase register.
func IsAppendRegister(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

// NormalizeRegister maps r to the register it stores into, or 0 when no
// macro register has that name.
func NormalizeRegister(r rune) rune {
	switch {
	case IsAppendRegister(r):
		return unicode.ToLower(r)
	case IsValidRegister(r):
		return r
	}
	return 0
}
