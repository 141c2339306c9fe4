package main

import (
	"fmt"
	"os"

	"github.com/edgefn/translation-gateway/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}
