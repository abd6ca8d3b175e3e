package main

import (
	"github.com/foomo/errorpages/cmd"
)

func main() {
	cmd.Execute()
}
