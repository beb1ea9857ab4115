package main

import (
	"os"

	"k8s.io/component-base/cli"

	"modcell.io/popio/cmd/popconv/app"
)

func main() {
	command := app.NewPopconvCommand()
	code := cli.Run(command)
	os.Exit(code)
}
