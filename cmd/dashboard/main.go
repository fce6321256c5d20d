package main

import (
	"github.com/salesdash/salesdash/internal/cmd"
)

func main() {
	cmd.Execute()
}
