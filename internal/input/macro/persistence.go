package macro

import (
	"fmt"

	"github.com/dshills/vimcore/internal/input/key"
)

// Export returns every macro as key notation, keyed by register name.
func Export(recorder *Recorder) map[string]string {
	out := make(map[string]string)
	for _, reg := range recorder.ListRegisters() {
		out[string(reg)] = key.FormatSequence(recorder.Get(reg))
	}
	return out
}

// Import loads macros from key notation. Without merge, existing macros
// are cleared first. Invalid entries are skipped and reported together.
func Import(recorder *Recorder, macros map[string]string, merge bool) error {
	if !merge {
		recorder.ClearAll()
	}

	var bad []string
	for name, notation := range macros {
		runes := []rune(name)
		if len(runes) != 1 || !IsValidRegister(runes[0]) {
			bad = append(bad, name)
			continue
		}
		events, err := key.ParseSequence(notation)
		if err != nil {
			bad = append(bad, name)
			continue
		}
		_ = recorder.Set(runes[0], events)
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRegister, bad)
	}
	return nil
}
