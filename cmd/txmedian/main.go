package main

import (
	"fmt"
	"os"

	"github.com/mlowery2/txmedian/internal/cli"
)

var version = "0.2.0"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
