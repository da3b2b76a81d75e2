package main

import (
	"cellchess/ui"
	"fmt"
	"os"
)

func main() {
	if err := ui.RunCellChess(); err != nil {
		fmt.Fprintf(os.Stderr, "error cellchess: %v\n", err)
		os.Exit(1)
	}
}
