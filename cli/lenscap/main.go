package main

import (
	"os"

	lenscapcmder "github.com/papercomputeco/lenscap/cmd/lenscap"
)

func main() {
	cmd := lenscapcmder.NewLenscapCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
