// Command vimcore drives the modal editing engine from a terminal or
// replays key sequences over text.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
