package main

import (
	"os"

	"github.com/amirvolinsky/fruitVeggieComparator/cmd/comparator/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	os.Exit(cmd.Execute())
}
