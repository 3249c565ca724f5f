// Command rtfdump prints the events, text and metadata of RTF documents.
//
// Usage:
//
//	rtfdump events [--bin-dir DIR] FILE
//	rtfdump text FILE
//	rtfdump info FILE
//
// FILE may be "-" to read standard input. Settings are read from a TOML
// file (see --config) and can be overridden with flags.
package main

import (
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
