package main

import "github.com/cmmoran/patternweave/cmd"

func main() {
	cmd.Execute()
}
