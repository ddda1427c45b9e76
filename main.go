package main

import "github.com/cliniform/bpvar-cli/cmd"

func main() {
	cmd.Execute()
}
