package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/frameseq/cmd/frameseq"
	"github.com/arthur-debert/frameseq/internal/version"
)

// Writes the man pages of frameseq and its subcommands into the directory
// given as argument, or the root page to stdout without one.
func main() {
	rootCmd := frameseq.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "FRAMESEQ",
		Section: "1",
		Source:  "frameseq " + version.Version,
		Manual:  "frameseq manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
