package main

import "github.com/notaslab/notas/cmd"

func main() {
	cmd.Execute()
}
