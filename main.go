package main

import "github.com/fondationhn/dossier-management/cmd"

func main() {
	cmd.Execute()
}
