package main

import (
	"os"

	"github.com/Chitrak-Aseri/Agents/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
