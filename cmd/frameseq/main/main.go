package main

import (
	"os"

	"github.com/arthur-debert/frameseq/cmd/frameseq"
)

func main() {
	os.Exit(frameseq.Run(os.Args[1:], os.Stdout, os.Stderr))
}
