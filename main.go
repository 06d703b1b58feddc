package main

import "github.com/dotcommander/codecred/cmd"

func main() {
	cmd.Execute()
}
