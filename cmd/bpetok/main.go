// Command bpetok is the command-line front-end for the BPE tokenizer
// engine (spec §6.2): it reads lines from standard input and writes one
// diagnostic line of encoded token ids (or, for `decode`, reconstructed
// text) per input line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
